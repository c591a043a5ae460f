package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// GET    v1/profile (200 OK, 404 Not found)
// PUT    v1/profile JSON (204 No content)
// POST   v1/profile/avatar multipart "avatar" (200 OK)
// GET    v1/addresses (200 OK)
// POST   v1/addresses JSON (201 Created)
// PUT    v1/addresses/{addressID} JSON (204 No content)
// DELETE v1/addresses/{addressID} (204 No content)
// POST   v1/addresses/{addressID}/default (204 No content)

const maxAvatarSize = 5 << 20

type AccountHandler struct {
	account port.AccountManager
}

func RegisterAccount(mux *http.ServeMux, account port.AccountManager) {
	h := AccountHandler{account}
	mux.HandleFunc("GET /v1/profile", requireUser(h.GetProfile))
	mux.HandleFunc("PUT /v1/profile", requireUser(h.SaveProfile))
	mux.HandleFunc("POST /v1/profile/avatar", requireUser(h.UploadAvatar))

	mux.HandleFunc("GET /v1/addresses", requireUser(h.ListAddresses))
	mux.HandleFunc("POST /v1/addresses", requireUser(h.CreateAddress))
	mux.HandleFunc("PUT /v1/addresses/{addressID}", requireUser(h.UpdateAddress))
	mux.HandleFunc("DELETE /v1/addresses/{addressID}", requireUser(h.DeleteAddress))
	mux.HandleFunc("POST /v1/addresses/{addressID}/default", requireUser(h.SetDefault))
}

func (h AccountHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	const op = "AccountHandler.GetProfile"
	log := slog.With("op", op)

	p, err := h.account.GetProfile(r.Context(), userID(r))
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, Profile{
		FullName:  p.FullName,
		Email:     p.Email,
		Phone:     p.Phone,
		AvatarURL: p.AvatarURL,
	})
}

func (h AccountHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	const op = "AccountHandler.SaveProfile"
	log := slog.With("op", op)

	var body Profile
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Warn("failed to parse JSON", "err", err)
		writeJSON(w, log, http.StatusBadRequest, errorBody{"invalid JSON data"})
		return
	}

	err := h.account.SaveProfile(r.Context(), domain.Profile{
		UserID:    userID(r),
		FullName:  body.FullName,
		Email:     body.Email,
		Phone:     body.Phone,
		AvatarURL: body.AvatarURL,
	})
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h AccountHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	const op = "AccountHandler.UploadAvatar"
	log := slog.With("op", op)

	if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
		log.Warn("failed to parse multipart form", "err", err)
		writeJSON(w, log, http.StatusBadRequest, errorBody{"invalid form data"})
		return
	}

	file, _, err := r.FormFile("avatar")
	if err != nil {
		writeJSON(w, log, http.StatusBadRequest, errorBody{"avatar file required"})
		return
	}
	defer file.Close()

	url, err := h.account.UploadAvatar(r.Context(), userID(r), file)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, struct {
		AvatarURL string `json:"avatar_url"`
	}{url})
}

func (h AccountHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	const op = "AccountHandler.ListAddresses"
	log := slog.With("op", op)

	as, err := h.account.ListAddresses(r.Context(), userID(r))
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	vs := make([]Address, len(as))
	for i := range as {
		vs[i] = toAddress(as[i])
	}
	writeJSON(w, log, http.StatusOK, vs)
}

func (h AccountHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	const op = "AccountHandler.CreateAddress"
	log := slog.With("op", op)

	var body Address
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Warn("failed to parse JSON", "err", err)
		writeJSON(w, log, http.StatusBadRequest, errorBody{"invalid JSON data"})
		return
	}

	created, err := h.account.CreateAddress(
		r.Context(), body.toDomain(userID(r), 0),
	)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusCreated, toAddress(created))
}

func (h AccountHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	const op = "AccountHandler.UpdateAddress"
	log := slog.With("op", op)

	addressID, err := strconv.ParseInt(r.PathValue("addressID"), 10, 64)
	if err != nil {
		writeJSON(w, log, http.StatusBadRequest, errorBody{"invalid address id"})
		return
	}

	var body Address
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Warn("failed to parse JSON", "err", err)
		writeJSON(w, log, http.StatusBadRequest, errorBody{"invalid JSON data"})
		return
	}

	err = h.account.UpdateAddress(r.Context(), body.toDomain(userID(r), addressID))
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h AccountHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	const op = "AccountHandler.DeleteAddress"
	log := slog.With("op", op)

	addressID, err := strconv.ParseInt(r.PathValue("addressID"), 10, 64)
	if err != nil {
		writeJSON(w, log, http.StatusBadRequest, errorBody{"invalid address id"})
		return
	}

	err = h.account.DeleteAddress(r.Context(), userID(r), addressID)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h AccountHandler) SetDefault(w http.ResponseWriter, r *http.Request) {
	const op = "AccountHandler.SetDefault"
	log := slog.With("op", op)

	addressID, err := strconv.ParseInt(r.PathValue("addressID"), 10, 64)
	if err != nil {
		writeJSON(w, log, http.StatusBadRequest, errorBody{"invalid address id"})
		return
	}

	err = h.account.SetDefaultAddress(r.Context(), userID(r), addressID)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
