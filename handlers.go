package main

import (
	"database/sql"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

type Blog struct {
	cfg       Config
	db        *sql.DB
	logger    *zap.SugaredLogger
	store     *sessions.CookieStore
	notifier  *Notifier
	templates map[string]*template.Template
}

func NewBlog(cfg Config, db *sql.DB, logger *zap.SugaredLogger) *Blog {
	return &Blog{
		cfg:       cfg,
		db:        db,
		logger:    logger,
		store:     newSessionStore(cfg.Secret),
		notifier:  NewNotifier(cfg.NotifyURL),
		templates: loadTemplates(),
	}
}

// Outcomes of the entry-creation flow. Handlers return these wrapped
// and Add translates them to HTTP statuses at the boundary; raw
// driver and transport errors never reach the response.
var (
	errNotLoggedIn   = errors.New("login required")
	errBadForm       = errors.New("malformed form data")
	errTitleRequired = errors.New("Title is required")
	errTextRequired  = errors.New("Text is required")
	errDatabase      = errors.New("database error")
	errNotification  = errors.New("notification error")
)

func (b *Blog) Home(w http.ResponseWriter, r *http.Request) {
	entries, err := getEntries(b.db)
	if err != nil {
		b.logger.Errorw("listing entries", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := map[string]any{
		"Title":      "Entries",
		"Entries":    entries,
		"IsLoggedIn": b.isLoggedIn(r),
		"Flashes":    b.popFlashes(w, r),
	}

	err = b.templates["show_entries.html"].ExecuteTemplate(w, "base", data)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// Add creates an entry: validate, insert inside a transaction, notify
// the echo endpoint, then commit. The insert and the outbound call are
// atomic with respect to persistence; a failed notification undoes
// the insert.
func (b *Blog) Add(w http.ResponseWriter, r *http.Request) {
	if err := b.createEntry(r); err != nil {
		switch {
		case errors.Is(err, errNotLoggedIn):
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		case errors.Is(err, errBadForm):
			http.Error(w, "Bad request", http.StatusBadRequest)
		case errors.Is(err, errTitleRequired), errors.Is(err, errTextRequired):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, errNotification):
			http.Error(w, errNotification.Error(), http.StatusInternalServerError)
		default:
			http.Error(w, errDatabase.Error(), http.StatusInternalServerError)
		}
		return
	}

	b.addFlash(w, r, "New entry was successfully posted")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (b *Blog) createEntry(r *http.Request) error {
	if !b.isLoggedIn(r) {
		return errNotLoggedIn
	}

	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("%w: %v", errBadForm, err)
	}

	title := r.FormValue("title")
	text := r.FormValue("text")

	if title == "" {
		return errTitleRequired
	}
	if text == "" {
		return errTextRequired
	}

	tx, err := b.db.Begin()
	if err != nil {
		b.logger.Errorw("beginning transaction", "error", err)
		return fmt.Errorf("%w: %v", errDatabase, err)
	}
	// Rollback is a no-op after a successful commit.
	defer tx.Rollback()

	id, err := insertEntry(tx, title, text)
	if err != nil {
		b.logger.Errorw("inserting entry", "title", title, "error", err)
		return fmt.Errorf("%w: %v", errDatabase, err)
	}

	if err := b.notifier.Notify(Entry{ID: id, Title: title, Text: text}); err != nil {
		b.logger.Errorw("notifying echo endpoint", "entry_id", id, "error", err)
		return fmt.Errorf("%w: %v", errNotification, err)
	}

	if err := tx.Commit(); err != nil {
		b.logger.Errorw("committing entry", "entry_id", id, "error", err)
		return fmt.Errorf("%w: %v", errDatabase, err)
	}

	return nil
}

type EntryResponse struct {
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func (er *EntryResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func newEntryListResponse(entries []Entry) []render.Renderer {
	list := []render.Renderer{}
	for _, entry := range entries {
		list = append(list, &EntryResponse{
			Title:     entry.Title,
			Text:      entry.Text,
			CreatedAt: entry.CreatedAt,
		})
	}
	return list
}

func (b *Blog) Search(w http.ResponseWriter, r *http.Request) {
	// Get yields "" for an absent q, which matches every entry.
	q := r.URL.Query().Get("q")

	entries, err := searchEntries(b.db, q)
	if err != nil {
		b.logger.Errorw("searching entries", "q", q, "error", err)
		http.Error(w, errDatabase.Error(), http.StatusInternalServerError)
		return
	}

	if err := render.RenderList(w, r, newEntryListResponse(entries)); err != nil {
		b.logger.Errorw("rendering search results", "error", err)
	}
}

func (b *Blog) Login(w http.ResponseWriter, r *http.Request) {
	var loginError string

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}

		username := r.FormValue("username")
		password := r.FormValue("password")

		loginError = checkCredentials(b.cfg, username, password)
		if loginError == "" {
			if err := b.setLoggedIn(w, r); err != nil {
				b.logger.Errorw("saving session on login", "error", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			b.addFlash(w, r, "You were logged in")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}

	data := map[string]any{
		"Title":      "Login",
		"Error":      loginError,
		"IsLoggedIn": b.isLoggedIn(r),
		"Flashes":    b.popFlashes(w, r),
	}

	err := b.templates["login.html"].ExecuteTemplate(w, "base", data)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (b *Blog) Logout(w http.ResponseWriter, r *http.Request) {
	b.clearLogin(w, r)
	b.addFlash(w, r, "You were logged out")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
