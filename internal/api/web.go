package api

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"citizenai-backend/internal/auth"
	"citizenai-backend/internal/core"
	"citizenai-backend/internal/database"
	"citizenai-backend/pkg/api"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"gorm.io/gorm"
)

const (
	msgFillAllFields      = "Please fill in all fields."
	msgInvalidCredentials = "Invalid email or password."
	msgEmailRegistered    = "Email already registered. Please login instead."
	msgSignupFailed       = "Error creating account. Please try again."
	msgLoginSuccess       = "Login successful!"
	msgSignupSuccess      = "Account created successfully! Please log in."
	msgLoggedOut          = "You have been logged out."
	msgFeedbackThanks     = "Thank you for your feedback! It helps us improve our services."
	msgFeedbackFailed     = "Your feedback could not be saved. Please try again."
	msgMessageRequired    = "Message is required"
	msgServiceUnavailable = "AI service is temporarily unavailable. Please try again later."
)

const dashboardFeedbackLimit = 10

type WebService struct {
	db             *gorm.DB
	sessions       *auth.SessionManager
	credentials    *auth.CredentialStore
	responder      *core.Responder
	classifier     *core.FeedbackClassifier
	renderer       *Renderer
	allowedOrigins []string
}

func NewWebService(
	db *gorm.DB,
	sessions *auth.SessionManager,
	credentials *auth.CredentialStore,
	responder *core.Responder,
	classifier *core.FeedbackClassifier,
	renderer *Renderer,
	allowedOrigins []string,
) *WebService {
	return &WebService{
		db:             db,
		sessions:       sessions,
		credentials:    credentials,
		responder:      responder,
		classifier:     classifier,
		renderer:       renderer,
		allowedOrigins: allowedOrigins,
	}
}

func (s *WebService) AddRoutes(r chi.Router) {
	r.NotFound(s.PageHandler(s.NotFound))

	r.Get("/health", RestHandler(func(r *http.Request) (any, error) { return nil, nil }))

	r.Group(func(r chi.Router) {
		r.Use(s.recoverPage)

		r.Get("/", s.PageHandler(s.Index))
		r.Get("/about", s.PageHandler(s.About))
		r.Get("/login", s.PageHandler(s.LoginPage))
		r.Post("/login", s.PageHandler(s.Login))
		r.Get("/signup", s.PageHandler(s.SignupPage))
		r.Post("/signup", s.PageHandler(s.Signup))
		r.Get("/logout", s.PageHandler(s.Logout))

		r.Group(func(r chi.Router) {
			r.Use(s.sessions.RequirePage)

			r.Get("/home", s.PageHandler(s.Home))
			r.Get("/chat", s.PageHandler(s.ChatPage))
			r.Post("/submit_feedback", s.PageHandler(s.SubmitFeedback))
			r.Get("/dashboard", s.PageHandler(s.Dashboard))
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.allowedOrigins,
			AllowedMethods:   []string{"POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
		r.Use(recoverAPI)

		r.Options("/chat", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		r.With(s.sessions.RequireAPI).Post("/chat", RestHandler(s.Chat))
	})
}

// PageHandler renders the error page when a page handler fails.
func (s *WebService) PageHandler(handler func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := handler(w, r); err != nil {
			var userID uint
			if identity, idErr := auth.FromContext(r.Context()); idErr == nil {
				userID = identity.UserID
			}
			slog.Error("error handling page request", "method", r.Method, "path", r.URL.Path, "user_id", userID, "error", err)
			s.renderer.renderErrorPage(w)
		}
	}
}

func (s *WebService) recoverPage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				slog.Error("panic in page handler", "path", r.URL.Path, "panic", rvr, "stack", string(debug.Stack()))
				s.renderer.renderErrorPage(w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func recoverAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				slog.Error("panic in api handler", "path", r.URL.Path, "panic", rvr, "stack", string(debug.Stack()))
				WriteJsonError(w, http.StatusInternalServerError, internalErrorMessage)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// newPage builds the common view model and consumes any pending flash notice.
func (s *WebService) newPage(w http.ResponseWriter, r *http.Request, title string) api.Page {
	page := api.Page{Title: title}

	identity, err := auth.FromContext(r.Context())
	if err != nil {
		identity, err = s.sessions.Identity(r)
	}
	if err == nil {
		page.UserName = identity.FullName
	}

	if flash, ok := auth.ReadFlash(w, r); ok {
		page.Notice = &api.Notice{Kind: string(flash.Kind), Message: flash.Message}
	}
	return page
}

func (s *WebService) render(w http.ResponseWriter, r *http.Request, name, title string) error {
	return s.renderer.Render(w, http.StatusOK, name, s.newPage(w, r, title))
}

func redirect(w http.ResponseWriter, r *http.Request, path string) error {
	http.Redirect(w, r, path, http.StatusSeeOther)
	return nil
}

func (s *WebService) Index(w http.ResponseWriter, r *http.Request) error {
	return s.render(w, r, PageIndex, "Welcome")
}

func (s *WebService) About(w http.ResponseWriter, r *http.Request) error {
	return s.render(w, r, PageAbout, "About")
}

func (s *WebService) NotFound(w http.ResponseWriter, r *http.Request) error {
	return s.renderer.Render(w, http.StatusNotFound, PageNotFound, s.newPage(w, r, "Not found"))
}

func (s *WebService) LoginPage(w http.ResponseWriter, r *http.Request) error {
	return s.render(w, r, PageLogin, "Log in")
}

func (s *WebService) Login(w http.ResponseWriter, r *http.Request) error {
	form, err := ParseForm[api.LoginForm](r)
	if err != nil {
		return s.formError(w, r, PageLogin, "Log in", api.SignupForm{}, msgFillAllFields)
	}
	echo := api.SignupForm{Email: form.Email}

	user, err := s.credentials.Authenticate(r.Context(), form.Email, form.Password)
	switch {
	case errors.Is(err, auth.ErrValidation):
		return s.formError(w, r, PageLogin, "Log in", echo, msgFillAllFields)
	case errors.Is(err, auth.ErrInvalidCredentials):
		return s.formError(w, r, PageLogin, "Log in", echo, msgInvalidCredentials)
	case err != nil:
		return err
	}

	if err := s.sessions.Start(w, r, user); err != nil {
		return err
	}
	slog.Info("user logged in", "user_id", user.ID)

	auth.WriteFlash(w, auth.Flash{Kind: auth.FlashSuccess, Message: msgLoginSuccess})
	return redirect(w, r, "/home")
}

func (s *WebService) SignupPage(w http.ResponseWriter, r *http.Request) error {
	return s.render(w, r, PageSignup, "Sign up")
}

func (s *WebService) Signup(w http.ResponseWriter, r *http.Request) error {
	form, err := ParseForm[api.SignupForm](r)
	if err != nil {
		return s.formError(w, r, PageSignup, "Sign up", api.SignupForm{}, msgFillAllFields)
	}
	echo := api.SignupForm{FullName: form.FullName, Email: form.Email}

	_, err = s.credentials.Register(r.Context(), form.FullName, form.Email, form.Password)
	switch {
	case errors.Is(err, auth.ErrValidation):
		return s.formError(w, r, PageSignup, "Sign up", echo, msgFillAllFields)
	case errors.Is(err, auth.ErrDuplicateEmail):
		return s.formError(w, r, PageSignup, "Sign up", echo, msgEmailRegistered)
	case err != nil:
		slog.Error("error creating account", "error", err)
		return s.formError(w, r, PageSignup, "Sign up", echo, msgSignupFailed)
	}

	auth.WriteFlash(w, auth.Flash{Kind: auth.FlashSuccess, Message: msgSignupSuccess})
	return redirect(w, r, "/login")
}

// formError re-renders a form page with a message. Passwords are never echoed.
func (s *WebService) formError(w http.ResponseWriter, r *http.Request, name, title string, form api.SignupForm, message string) error {
	page := s.newPage(w, r, title)
	page.Error = message
	page.Form = form
	return s.renderer.Render(w, http.StatusOK, name, page)
}

func (s *WebService) Logout(w http.ResponseWriter, r *http.Request) error {
	s.sessions.End(w, r)
	auth.WriteFlash(w, auth.Flash{Kind: auth.FlashInfo, Message: msgLoggedOut})
	return redirect(w, r, "/")
}

func (s *WebService) Home(w http.ResponseWriter, r *http.Request) error {
	return s.render(w, r, PageHome, "Home")
}

func (s *WebService) ChatPage(w http.ResponseWriter, r *http.Request) error {
	return s.render(w, r, PageChat, "Chat")
}

func (s *WebService) Chat(r *http.Request) (any, error) {
	identity, err := auth.FromContext(r.Context())
	if err != nil {
		return nil, CodedErrorf(http.StatusUnauthorized, "Authentication required")
	}

	req, err := ParseByContentType[api.ChatRequest](r)
	if err != nil {
		return nil, CodedErrorf(http.StatusBadRequest, msgMessageRequired)
	}

	question := strings.TrimSpace(req.Message)
	if question == "" {
		return nil, CodedErrorf(http.StatusBadRequest, msgMessageRequired)
	}

	reply := s.responder.Respond(question)
	sentiment := core.ClassifyChatTurn(req.Message)

	if _, err := database.RecordChat(r.Context(), s.db, identity.UserID, req.Message, reply.Text, database.ChatMetadata{
		Category:  reply.Category,
		Sentiment: sentiment,
	}); err != nil {
		slog.Error("chat api error", "user_id", identity.UserID, "error", err)
		return nil, CodedErrorf(http.StatusServiceUnavailable, msgServiceUnavailable)
	}

	return api.ChatResponse{
		Reply:     reply.Text,
		Sentiment: sentiment,
		Question:  req.Message,
	}, nil
}

func (s *WebService) SubmitFeedback(w http.ResponseWriter, r *http.Request) error {
	identity, err := auth.FromContext(r.Context())
	if err != nil {
		return redirect(w, r, "/login")
	}

	form, err := ParseForm[api.FeedbackForm](r)
	if err != nil {
		return redirect(w, r, "/chat")
	}

	text := strings.TrimSpace(form.Feedback)
	if text == "" {
		return redirect(w, r, "/chat")
	}

	sentiment := s.classifier.Classify(text)
	_, stored, err := database.RecordFeedback(r.Context(), s.db, identity.UserID, form.Question, text, sentiment)
	if err != nil {
		slog.Error("error recording feedback", "user_id", identity.UserID, "error", err)
		auth.WriteFlash(w, auth.Flash{Kind: auth.FlashError, Message: msgFeedbackFailed})
		return redirect(w, r, "/chat")
	}
	if stored {
		auth.WriteFlash(w, auth.Flash{Kind: auth.FlashSuccess, Message: msgFeedbackThanks})
	}
	return redirect(w, r, "/chat")
}

func (s *WebService) Dashboard(w http.ResponseWriter, r *http.Request) error {
	identity, err := auth.FromContext(r.Context())
	if err != nil {
		return redirect(w, r, "/login")
	}

	stats, err := database.FeedbackStatsForUser(r.Context(), s.db, identity.UserID)
	if err != nil {
		return err
	}

	recent, err := database.RecentFeedback(r.Context(), s.db, identity.UserID, dashboardFeedbackLimit)
	if err != nil {
		return err
	}

	page := s.newPage(w, r, "Dashboard")
	page.Stats = convertFeedbackStats(stats)
	page.RecentFeedback = convertFeedbackEntries(recent)
	return s.renderer.Render(w, http.StatusOK, PageDashboard, page)
}
