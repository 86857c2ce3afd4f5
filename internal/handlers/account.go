package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/simplecom/storefront-e2e/internal/models"
	"github.com/simplecom/storefront-e2e/internal/twin"
)

// credentialsData refills the login and register forms after a failure
type credentialsData struct {
	Name  string
	Email string
}

// LoginForm renders the login screen
func (u *UI) LoginForm(w http.ResponseWriter, r *http.Request) {
	u.render(w, r, http.StatusOK, "login", pageData{Title: "Login", Data: credentialsData{}})
}

// Login checks the credentials and starts a cookie session
func (u *UI) Login(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	user, err := u.store.Authenticate(email, r.FormValue("password"))
	if err != nil {
		u.render(w, r, http.StatusUnauthorized, "login", pageData{
			Title: "Login",
			Error: "Invalid email or password",
			Data:  credentialsData{Email: email},
		})
		return
	}

	if err := u.startSession(w, user); err != nil {
		log.Printf("Error starting session: %v", err)
		http.Error(w, "Failed to log in", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RegisterForm renders the registration screen
func (u *UI) RegisterForm(w http.ResponseWriter, r *http.Request) {
	u.render(w, r, http.StatusOK, "register", pageData{Title: "Register", Data: credentialsData{}})
}

// Register creates a customer account and logs it in
func (u *UI) Register(w http.ResponseWriter, r *http.Request) {
	form := credentialsData{
		Name:  strings.TrimSpace(r.FormValue("name")),
		Email: strings.TrimSpace(r.FormValue("email")),
	}

	user, err := u.store.Register(form.Email, r.FormValue("password"), form.Name, models.RoleUser)
	if err != nil {
		u.render(w, r, twin.StatusFor(err), "register", pageData{
			Title: "Register",
			Error: registrationError(err),
			Data:  form,
		})
		return
	}

	log.Printf("Registered user %d (%s)", user.ID, user.Email)
	if err := u.startSession(w, user); err != nil {
		log.Printf("Error starting session: %v", err)
		http.Error(w, "Failed to log in", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout drops the session cookie
func (u *UI) Logout(w http.ResponseWriter, r *http.Request) {
	clearSession(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func registrationError(err error) string {
	switch {
	case errors.Is(err, twin.ErrDuplicateEmail):
		return "Email already registered"
	case errors.Is(err, twin.ErrInvalidEmail):
		return "Please enter a valid email address"
	case errors.Is(err, twin.ErrWeakPassword):
		return "Password is too short"
	}
	log.Printf("Unexpected registration error: %v", err)
	return "Registration failed"
}
