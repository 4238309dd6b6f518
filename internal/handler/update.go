package handler

import (
	"net/http"

	"github.com/strivehq/strive/internal/apperr"
	"github.com/strivehq/strive/internal/ctxkeys"
	"github.com/strivehq/strive/internal/model"
	"github.com/strivehq/strive/internal/service"
)

type UpdateHandler struct {
	identityService *service.IdentityService
	updateService   *service.UpdateService
}

func NewUpdateHandler(identityService *service.IdentityService, updateService *service.UpdateService) *UpdateHandler {
	return &UpdateHandler{
		identityService: identityService,
		updateService:   updateService,
	}
}

func (h *UpdateHandler) user(r *http.Request) (*model.User, error) {
	return h.identityService.Resolve(ctxkeys.Principal(r.Context()))
}

// Create appends a timeline entry to the challenge in the path.
func (h *UpdateHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	in := service.CreateUpdateInput{
		Content:   r.FormValue("content"),
		ImageURLs: r.Form["images"],
	}

	_, err = h.updateService.Create(user, challengeID, in)
	if err != nil {
		redirectError(w, r, target, err)
		return
	}

	http.Redirect(w, r, target+"?success=true", http.StatusSeeOther)
}

func (h *UpdateHandler) Edit(w http.ResponseWriter, r *http.Request) {
	updateID := r.PathValue("id")

	err := r.ParseForm()
	if err != nil {
		redirectError(w, r, "/app/challenges", apperr.InvalidArg("failed to parse form"))
		return
	}

	user, err := h.user(r)
	if err != nil {
		redirectError(w, r, "/app/challenges", err)
		return
	}

	in := service.EditUpdateInput{
		Content:   r.FormValue("content"),
		ImageURLs: r.Form["images"],
	}

	update, err := h.updateService.Edit(user, updateID, in)
	if err != nil {
		redirectError(w, r, "/app/challenges", err)
		return
	}

	http.Redirect(w, r, "/app/challenges/"+update.ChallengeID+"?editSuccess=true", http.StatusSeeOther)
}

func (h *UpdateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	updateID := r.PathValue("id")

	user, err := h.user(r)
	if err != nil {
		redirectError(w, r, "/app/challenges", err)
		return
	}

	update, err := h.updateService.Delete(user, updateID)
	if err != nil {
		redirectError(w, r, "/app/challenges", err)
		return
	}

	http.Redirect(w, r, "/app/challenges/"+update.ChallengeID+"?deletesuccess=true", http.StatusSeeOther)
}
