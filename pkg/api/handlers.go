package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/NVIDIA/cookbook/pkg/applier"
	"github.com/NVIDIA/cookbook/pkg/defaults"
	apperrors "github.com/NVIDIA/cookbook/pkg/errors"
	"github.com/NVIDIA/cookbook/pkg/recipe"
	"github.com/NVIDIA/cookbook/pkg/serializer"
	"github.com/NVIDIA/cookbook/pkg/server"
	"gopkg.in/yaml.v3"
)

// maxPlanBodyBytes caps the plan request payload.
const maxPlanBodyBytes = 1 << 20 // 1MB

// CookbookHandler serves recipe and plan requests over a single cookbook.
type CookbookHandler struct {
	cookbook       recipe.Cookbook
	loader         *recipe.Loader
	applier        *applier.Applier
	cache          *recipe.Cache
	version        string
	maxPlanRecipes int
}

// HandlerOption customizes a CookbookHandler.
type HandlerOption func(*CookbookHandler)

// WithCache attaches a definition cache to the handler's loader.
func WithCache(c *recipe.Cache) HandlerOption {
	return func(h *CookbookHandler) {
		h.cache = c
	}
}

// WithVersion stamps generated plans with the given version.
func WithVersion(v string) HandlerOption {
	return func(h *CookbookHandler) {
		if v != "" {
			h.version = v
		}
	}
}

// WithMaxPlanRecipes caps the recipes accepted per plan request.
func WithMaxPlanRecipes(n int) HandlerOption {
	return func(h *CookbookHandler) {
		if n > 0 {
			h.maxPlanRecipes = n
		}
	}
}

// NewCookbookHandler creates a handler over the given cookbook.
func NewCookbookHandler(cookbook recipe.Cookbook, opts ...HandlerOption) *CookbookHandler {
	h := &CookbookHandler{
		cookbook:       cookbook,
		version:        versionDefault,
		maxPlanRecipes: 100,
	}
	for _, opt := range opts {
		opt(h)
	}

	var loaderOpts []recipe.LoaderOption
	if h.cache != nil {
		loaderOpts = append(loaderOpts, recipe.WithCache(h.cache))
	}
	h.loader = recipe.NewLoader(cookbook, loaderOpts...)
	h.applier = applier.New(h.loader, applier.WithVersion(h.version))

	return h
}

// Routes returns the route map to register with the server. The recipes
// route is registered both with and without a trailing slash so the mux
// matches the bare collection path and named recipes below it.
func (h *CookbookHandler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/recipes":  h.HandleRecipes,
		"/v1/recipes/": h.HandleRecipes,
		"/v1/plan":     h.HandlePlan,
	}
}

// RecipeSummary is one row in the recipe listing.
type RecipeSummary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// RecipeList is the GET /v1/recipes response body.
type RecipeList struct {
	Count   int             `json:"count"`
	Recipes []RecipeSummary `json:"recipes"`
}

// HandleRecipes serves GET /v1/recipes and GET /v1/recipes/{name}.
// Without a name it lists the cookbook; with one it returns the parsed
// recipe definition.
func (h *CookbookHandler) HandleRecipes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		server.WriteError(w, r, http.StatusMethodNotAllowed, apperrors.ErrCodeMethodNotAllowed,
			"method not allowed", false, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.RecipeHandlerTimeout)
	defer cancel()

	name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/recipes"), "/")
	if name == "" {
		h.listRecipes(ctx, w, r)
		return
	}

	def, err := h.loader.Load(ctx, name)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "failed to load recipe",
			map[string]any{"recipe": name})
		return
	}

	serializer.RespondJSON(w, http.StatusOK, def)
}

// listRecipes writes the sorted recipe listing. A recipe that fails to
// load still appears in the list, just without a description.
func (h *CookbookHandler) listRecipes(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	names, err := recipe.Names(h.cookbook)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "failed to list recipes", nil)
		return
	}

	list := RecipeList{
		Count:   len(names),
		Recipes: make([]RecipeSummary, 0, len(names)),
	}
	for _, name := range names {
		summary := RecipeSummary{Name: name}
		def, lerr := h.loader.Load(ctx, name)
		if lerr != nil {
			slog.Debug("recipe skipped in listing detail", "recipe", name, "error", lerr)
		} else {
			summary.Description = def.Metadata.Description
		}
		list.Recipes = append(list.Recipes, summary)
	}

	serializer.RespondJSON(w, http.StatusOK, list)
}

// PlanRequest is the POST /v1/plan request body.
type PlanRequest struct {
	Recipes []string `json:"recipes" yaml:"recipes"`
}

// HandlePlan serves POST /v1/plan: it expands the requested recipes into
// a flat operation plan without executing anything.
func (h *CookbookHandler) HandlePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		server.WriteError(w, r, http.StatusMethodNotAllowed, apperrors.ErrCodeMethodNotAllowed,
			"method not allowed", false, nil)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPlanBodyBytes))
	if err != nil {
		server.WriteError(w, r, http.StatusBadRequest, apperrors.ErrCodeInvalidRequest,
			"failed to read request body", false, nil)
		return
	}

	var req PlanRequest
	if err := unmarshalBody(r.Header.Get("Content-Type"), body, &req); err != nil {
		server.WriteErrorFromErr(w, r, err, "invalid plan request", nil)
		return
	}

	if len(req.Recipes) == 0 {
		server.WriteError(w, r, http.StatusBadRequest, apperrors.ErrCodeInvalidRequest,
			"at least one recipe is required", false, nil)
		return
	}
	if len(req.Recipes) > h.maxPlanRecipes {
		server.WriteError(w, r, http.StatusBadRequest, apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("too many recipes: %d exceeds limit of %d", len(req.Recipes), h.maxPlanRecipes),
			false, map[string]any{"limit": h.maxPlanRecipes})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.PlanHandlerTimeout)
	defer cancel()

	p, err := h.applier.Plan(ctx, req.Recipes...)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "failed to build plan",
			map[string]any{"recipes": req.Recipes})
		return
	}

	serializer.RespondJSON(w, http.StatusOK, p)
}

// unmarshalBody decodes the request payload as YAML or JSON based on the
// Content-Type header, defaulting to JSON.
func unmarshalBody(contentType string, body []byte, v any) error {
	if strings.Contains(contentType, "yaml") {
		if err := yaml.Unmarshal(body, v); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid YAML payload", err)
		}
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid JSON payload", err)
	}
	return nil
}
