package web

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/weirlive/panw-object/internal/auth"
	"github.com/weirlive/panw-object/internal/domain"
	"github.com/weirlive/panw-object/internal/service"
	"github.com/weirlive/panw-object/internal/validation"
	"go.uber.org/zap"
)

// GeneratePage holds data for the generator page.
type GeneratePage struct {
	Form         FormValues
	Operations   []Option
	ObjectTypes  []Option
	Placeholder  string
	Placeholders map[string]string
	GroupName    string
	Output       string
	Outcome      domain.Outcome
	Directives   int
	Skipped      int
}

func (s *Server) newGeneratePage(form FormValues) *GeneratePage {
	page := &GeneratePage{
		Form:         form,
		Operations:   operationOptions,
		ObjectTypes:  objectTypeOptions,
		Placeholder:  placeholderFor(form.Operation),
		Placeholders: placeholders,
	}
	if form.Group && strings.TrimSpace(form.Zone) != "" {
		page.GroupName = s.generator.GroupName(form.Zone, form.GroupSuffix)
	}
	return page
}

// handleForm renders the empty generator form.
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "generate", PageData{
		Title:   "Generate",
		User:    userFromContext(r),
		Content: s.newGeneratePage(defaultForm()),
	})
}

// handleGenerate runs the submitted form through the generator and shows
// the output below the form.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, "generate", PageData{
			Title:   "Generate",
			User:    userFromContext(r),
			Flash:   &FlashMessage{Type: "error", Title: "Invalid Form", Message: "The form could not be read."},
			Content: s.newGeneratePage(defaultForm()),
		})
		return
	}

	form := readForm(r)
	page := s.newGeneratePage(form)
	data := PageData{Title: "Generate", User: userFromContext(r), Content: page}

	gen, err := s.generator.Generate(r.Context(), form.Request())
	if err != nil {
		data.Flash = flashForError(err)
		if !errors.Is(err, domain.ErrInvalidInput) {
			s.logger.Error("generation failed", zap.Error(err))
			s.render(w, http.StatusInternalServerError, "generate", data)
			return
		}
		s.render(w, http.StatusUnprocessableEntity, "generate", data)
		return
	}

	page.Output = gen.Result.Text()
	page.Outcome = gen.Outcome
	page.Directives = gen.Directives
	page.Skipped = gen.Skipped
	data.Flash = flashForGeneration(gen)

	s.render(w, http.StatusOK, "generate", data)
}

// flashForError maps a failed precondition to the notice shown to the
// operator. The zone is reported before the entries.
func flashForError(err error) *FlashMessage {
	var verrs validation.ValidationErrors
	if errors.As(err, &verrs) {
		fields := verrs.Fields()
		switch {
		case slices.Contains(fields, "zone"):
			return &FlashMessage{Type: "error", Title: "Missing Zone Name", Message: "Please enter the Zone Name."}
		case slices.Contains(fields, "entries"):
			return &FlashMessage{Type: "error", Title: "Missing Object List/Values", Message: "Please paste your object list or values."}
		}
		return &FlashMessage{Type: "error", Title: "Invalid Input", Message: verrs.Error()}
	}
	return &FlashMessage{Type: "error", Title: "Generation Failed", Message: "Something went wrong. Please try again."}
}

// flashForGeneration reports how a generation went.
func flashForGeneration(gen *service.Generation) *FlashMessage {
	switch gen.Outcome {
	case domain.OutcomeFull, domain.OutcomePartial:
		msg := "Your Palo Alto CLI commands are ready."
		if slices.ContainsFunc(gen.Result.Lines, func(l string) bool {
			return strings.HasPrefix(l, "set address-group ")
		}) {
			msg += " Address group configured."
		}
		if gen.Outcome == domain.OutcomePartial {
			msg += " Some entries were skipped."
		}
		return &FlashMessage{Type: "success", Title: "Commands Generated", Message: msg}
	}

	if gen.Skipped > 0 {
		return &FlashMessage{Type: "error", Title: "No Valid Commands Generated", Message: "All entries were malformed or skipped."}
	}
	return &FlashMessage{Type: "error", Title: "No Commands Generated", Message: "The object list might be empty or all entries were malformed/empty."}
}

// handleLoginPage renders the login page.
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if s.oidc == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := PageData{Title: "Sign in"}
	if returnTo := auth.LocalPath(r.URL.Query().Get("return_to")); returnTo != "/" {
		data.Content = returnTo
	}
	if msg := r.URL.Query().Get("error"); msg != "" {
		data.Flash = &FlashMessage{Type: "error", Title: "Sign-in Failed", Message: msg}
	}

	s.render(w, http.StatusOK, "login", data)
}
