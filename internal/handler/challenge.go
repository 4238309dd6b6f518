package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/strivehq/strive/internal/apperr"
	"github.com/strivehq/strive/internal/ctxkeys"
	"github.com/strivehq/strive/internal/markdown"
	"github.com/strivehq/strive/internal/model"
	"github.com/strivehq/strive/internal/service"
	"github.com/strivehq/strive/internal/timeline"
)

type ChallengeHandler struct {
	identityService  *service.IdentityService
	challengeService *service.ChallengeService
	parser           *markdown.Parser
}

func NewChallengeHandler(identityService *service.IdentityService, challengeService *service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{
		identityService:  identityService,
		challengeService: challengeService,
		parser:           markdown.NewParser(),
	}
}

func (h *ChallengeHandler) user(r *http.Request) (*model.User, error) {
	return h.identityService.Resolve(ctxkeys.Principal(r.Context()))
}

// Create handles the challenge form post. Image URLs arrive as repeated
// "images" values, already uploaded to blob storage by a prior request.
func (h *ChallengeHandler) Create(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		redirectError(w, r, "/app/challenges/new", apperr.InvalidArg("failed to parse form"))
		return
	}

	user, err := h.user(r)
	if err != nil {
		redirectError(w, r, "/app/challenges/new", err)
		return
	}

	in := service.CreateChallengeInput{
		Title:       r.FormValue("title"),
		Category:    r.FormValue("category"),
		Difficulty:  r.FormValue("difficulty"),
		Description: r.FormValue("description"),
		Goal:        r.FormValue("goal"),
		Duration:    formInt(r, "duration"),
		Progress:    formFloat(r, "progress"),
		Age:         formInt(r, "age"),
		Gender:      r.FormValue("gender"),
		CityAddress: r.FormValue("cityAddress"),
		Country:     r.FormValue("country"),
		CoverURLs:   r.Form["images"],
	}

	challenge, err := h.challengeService.Create(user, in)
	if err != nil {
		redirectError(w, r, "/app/challenges/new", err)
		return
	}

	http.Redirect(w, r, "/app/challenges/"+challenge.ID+"?success=true", http.StatusSeeOther)
}

func (h *ChallengeHandler) Edit(w http.ResponseWriter, r *http.Request) {
	challengeID := r.PathValue("id")
	target := "/app/challenges/" + challengeID

	err := r.ParseForm()
	if err != nil {
		redirectError(w, r, target, apperr.InvalidArg("failed to parse form"))
		return
	}

	user, err := h.user(r)
	if err != nil {
		redirectError(w, r, target, err)
		return
	}

	in := service.EditChallengeInput{
		Title:       formString(r, "title"),
		Category:    formString(r, "category"),
		Difficulty:  formString(r, "difficulty"),
		Description: formString(r, "description"),
		Goal:        formString(r, "goal"),
		Duration:    formInt(r, "duration"),
		Progress:    formFloat(r, "progress"),
		Age:         formInt(r, "age"),
		Gender:      formString(r, "gender"),
		CityAddress: formString(r, "cityAddress"),
		Country:     formString(r, "country"),
		Completed:   formBool(r, "completed"),
		CoverURLs:   r.Form["images"],
	}

	_, err = h.challengeService.Edit(user, challengeID, in)
	if err != nil {
		redirectError(w, r, target, err)
		return
	}

	http.Redirect(w, r, target+"?editSuccess=true", http.StatusSeeOther)
}

func (h *ChallengeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	challengeID := r.PathValue("id")

	user, err := h.user(r)
	if err != nil {
		redirectError(w, r, "/app/challenges", err)
		return
	}

	err = h.challengeService.Delete(user, challengeID)
	if err != nil {
		redirectError(w, r, "/app/challenges", err)
		return
	}

	http.Redirect(w, r, "/app/challenges?deletesuccess=true", http.StatusSeeOther)
}

// List returns the acting user's challenges.
func (h *ChallengeHandler) List(w http.ResponseWriter, r *http.Request) {
	user, err := h.user(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	challenges, err := h.challengeService.ForUser(user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if challenges == nil {
		challenges = []*model.Challenge{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"challenges": challenges})
}

type updateView struct {
	*model.Update
	HTML   string         `json:"html"`
	Images []*model.Image `json:"images"`
}

type pagesView struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type challengeDetailView struct {
	Challenge       *model.Challenge `json:"challenge"`
	DescriptionHTML string           `json:"descriptionHtml"`
	Covers          []*model.Image   `json:"covers"`
	Updates         []updateView     `json:"updates"`
	ActiveIndex     int              `json:"activeIndex"`
	Pages           pagesView        `json:"pages"`
	TimeProgress    float64          `json:"timeProgress"`
}

// Detail assembles the challenge + update + image graph together with the
// derived navigation state: active index, page window, time-based progress.
func (h *ChallengeHandler) Detail(w http.ResponseWriter, r *http.Request) {
	_, err := h.user(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	view, err := h.challengeService.Timeline(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	updates := make([]updateView, 0, len(view.Updates))
	for _, update := range view.Updates {
		updates = append(updates, updateView{
			Update: update,
			HTML:   h.render(update.Content),
			Images: view.ImagesByUpdate[update.ID],
		})
	}

	activeIndex := timeline.ActiveIndex(len(view.Updates))
	start, end := timeline.Window(len(view.Updates), activeIndex)

	writeJSON(w, http.StatusOK, challengeDetailView{
		Challenge:       view.Challenge,
		DescriptionHTML: h.render(view.Challenge.Description),
		Covers:          view.Covers,
		Updates:         updates,
		ActiveIndex:     activeIndex,
		Pages:           pagesView{Start: start, End: end},
		TimeProgress:    100 * timeline.Progress(view.Challenge.CreatedAt, view.Challenge.Duration, time.Now()),
	})
}

func (h *ChallengeHandler) render(source string) string {
	html, err := h.parser.Parse([]byte(source))
	if err != nil {
		slog.Error("failed to render markdown", "error", err)
		return ""
	}
	return string(html)
}
