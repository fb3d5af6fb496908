package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/readtrack/readtrack/internal/auth"
	"github.com/readtrack/readtrack/internal/books"
	"github.com/readtrack/readtrack/internal/entities"
	"github.com/readtrack/readtrack/internal/forms"
)

// DashboardController serves the book listing and the create/edit flows.
type DashboardController struct {
	books    *books.Service
	sessions *auth.SessionManager
}

// NewDashboardController creates a new dashboard controller.
func NewDashboardController(booksService *books.Service, sessions *auth.SessionManager) *DashboardController {
	return &DashboardController{
		books:    booksService,
		sessions: sessions,
	}
}

// Dashboard lists the current user's books and shows the add-book form.
func (dc *DashboardController) Dashboard(c *gin.Context) {
	user := auth.CurrentUser(c)

	list, err := dc.books.List(user)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load books")
		return
	}

	dc.renderDashboard(c, http.StatusOK, user, list, forms.BookForm{}, nil)
}

// CreateBook handles the add-book form submission on the dashboard.
func (dc *DashboardController) CreateBook(c *gin.Context) {
	user := auth.CurrentUser(c)

	form, errs := forms.ParseBookForm(c)
	if errs.Any() {
		list, err := dc.books.List(user)
		if err != nil {
			c.String(http.StatusInternalServerError, "Failed to load books")
			return
		}
		dc.renderDashboard(c, http.StatusOK, user, list, form, errs)
		return
	}

	if _, err := dc.books.Create(user, form.Title, form.TotalPages, form.PagesRead); err != nil {
		c.String(http.StatusInternalServerError, "Failed to save book")
		return
	}

	dc.sessions.SetLastBook(c.Request, form.Title)
	dc.sessions.AddFlash(c.Request, "success", "Book progress saved!")
	c.Redirect(http.StatusFound, "/dashboard")
}

// EditBookPage shows the edit form prefilled with the book's current values.
// Unknown ids get a 404; books owned by someone else redirect back to the
// dashboard with a flash, which does reveal that the record exists.
func (dc *DashboardController) EditBookPage(c *gin.Context) {
	user := auth.CurrentUser(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.String(http.StatusNotFound, "404 page not found")
		return
	}

	book, err := dc.books.Get(user, id)
	if err != nil {
		dc.handleBookError(c, err)
		return
	}

	form := forms.BookForm{
		Title:      book.Title,
		TotalPages: book.TotalPages,
		PagesRead:  book.PagesRead,
	}
	dc.renderEdit(c, http.StatusOK, book.ID, form, nil)
}

// UpdateBook overwrites the three mutable fields of an owned book.
func (dc *DashboardController) UpdateBook(c *gin.Context) {
	user := auth.CurrentUser(c)

	id, err := parseIDParam(c)
	if err != nil {
		c.String(http.StatusNotFound, "404 page not found")
		return
	}

	form, errs := forms.ParseBookForm(c)
	if errs.Any() {
		dc.renderEdit(c, http.StatusOK, id, form, errs)
		return
	}

	if _, err := dc.books.Edit(user, id, form.Title, form.TotalPages, form.PagesRead); err != nil {
		dc.handleBookError(c, err)
		return
	}

	dc.sessions.SetLastBook(c.Request, form.Title)
	dc.sessions.AddFlash(c.Request, "success", "Book updated.")
	c.Redirect(http.StatusFound, "/dashboard")
}

func (dc *DashboardController) handleBookError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, books.ErrNotFound):
		c.String(http.StatusNotFound, "404 page not found")
	case errors.Is(err, books.ErrNotOwner):
		dc.sessions.AddFlash(c.Request, "danger", "Unauthorized access.")
		c.Redirect(http.StatusFound, "/dashboard")
	default:
		c.String(http.StatusInternalServerError, "Failed to load book")
	}
}

func (dc *DashboardController) renderDashboard(c *gin.Context, status int, user *entities.User, list []entities.Book, form forms.BookForm, errs forms.Errors) {
	lastBook, hasLastBook := dc.sessions.LastBook(c.Request)

	c.HTML(status, "dashboard.html", gin.H{
		"Title":       "Dashboard",
		"Username":    user.Username,
		"Books":       list,
		"LastBook":    lastBook,
		"HasLastBook": hasLastBook,
		"Form":        form,
		"Errors":      errs,
		"CSRFToken":   auth.GetCSRFToken(c),
		"Flashes":     dc.sessions.PopFlashes(c.Request),
	})
}

func (dc *DashboardController) renderEdit(c *gin.Context, status int, bookID uint, form forms.BookForm, errs forms.Errors) {
	c.HTML(status, "edit_book.html", gin.H{
		"Title":     "Edit Book",
		"BookID":    bookID,
		"Form":      form,
		"Errors":    errs,
		"CSRFToken": auth.GetCSRFToken(c),
		"Flashes":   dc.sessions.PopFlashes(c.Request),
	})
}
