package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fringe/internal/adapters/http/middleware"
	accountStoreDefs "fringe/internal/adapters/storage/account"
	"fringe/internal/application/listutil"
	"fringe/internal/application/orchestrators"
	"fringe/internal/domain/audit"
)

// accountView is the JSON shape for console accounts. The password hash never leaves the server.
type accountView struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

func handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := strictDecode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}, orchestrators.LoginDeps{AccountStore: stores.AccountStore})
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrAccountLocked):
			respondError(w, http.StatusTooManyRequests, err.Error())
		default:
			respondError(w, http.StatusUnauthorized, orchestrators.ErrInvalidCredentials.Error())
		}
		return
	}

	token, err := sessions.Create(result.AccountID, result.Email, result.Role)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	recordAudit(r, audit.CategorySecurity, audit.ActionLogin, "account", result.AccountID, "logged in")
	respondOK(w, map[string]string{
		"account_id": result.AccountID,
		"email":      result.Email,
		"role":       result.Role,
	}, "logged in")
}

func handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("fringe_session"); err == nil {
		sessions.Delete(cookie.Value)
	}
	middleware.ClearSessionCookie(w)
	recordAudit(r, audit.CategorySecurity, audit.ActionLogout, "account", "", "logged out")
	respondOK(w, nil, "logged out")
}

func handleMe(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	respondOK(w, map[string]string{
		"account_id": sess.AccountID,
		"email":      sess.Email,
		"role":       sess.Role,
	}, "")
}

func handleChangePassword(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := strictDecode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := orchestrators.ExecuteChangePassword(r.Context(), orchestrators.ChangePasswordInput{
		AccountID:       sess.AccountID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}, orchestrators.ChangePasswordDeps{AccountStore: stores.AccountStore})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	recordAudit(r, audit.CategorySecurity, audit.ActionUpdate, "account", sess.AccountID, "changed password")
	respondOK(w, nil, "password changed")
}

func handleAccountList(w http.ResponseWriter, r *http.Request) {
	params := listutil.ParseListParams(r.URL.Query(), nil, []string{"role"})
	filter := accountStoreDefs.ListFilter{
		Role:   params.Filters["role"],
		Limit:  params.PerPage,
		Offset: (params.Page - 1) * params.PerPage,
	}

	accounts, err := stores.AccountStore.List(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	total, err := stores.AccountStore.Count(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	views := make([]accountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, accountView{
			ID:        a.ID,
			Email:     a.Email,
			Role:      a.Role,
			CreatedAt: a.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	respondList(w, views, listutil.NewPageInfo(params.Page, params.PerPage, total))
}

func handleAccountCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := strictDecode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	acct, err := orchestrators.ExecuteCreateAccount(r.Context(), orchestrators.CreateAccountInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}, orchestrators.CreateAccountDeps{
		AccountStore: stores.AccountStore,
		GenerateID:   generateID,
		Now:          timeNow,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrEmailTaken) {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	recordAudit(r, audit.CategoryAccount, audit.ActionCreate, "account", acct.ID, "created account "+acct.Email)
	respondCreated(w, accountView{
		ID:        acct.ID,
		Email:     acct.Email,
		Role:      acct.Role,
		CreatedAt: acct.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}, "account created")
}

func handleAccountGet(w http.ResponseWriter, r *http.Request) {
	acct, err := stores.AccountStore.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "account not found")
		return
	}
	respondOK(w, accountView{
		ID:        acct.ID,
		Email:     acct.Email,
		Role:      acct.Role,
		CreatedAt: acct.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}, "")
}

func handleAccountDelete(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	id := chi.URLParam(r, "id")
	if id == sess.AccountID {
		respondError(w, http.StatusBadRequest, "cannot delete your own account")
		return
	}
	if _, err := stores.AccountStore.GetByID(r.Context(), id); err != nil {
		respondError(w, http.StatusNotFound, "account not found")
		return
	}
	if err := stores.AccountStore.Delete(r.Context(), id); err != nil {
		internalError(w, err)
		return
	}
	recordAudit(r, audit.CategoryAccount, audit.ActionDelete, "account", id, "deleted account")
	respondOK(w, nil, "account deleted")
}
