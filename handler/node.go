package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/mkrogh/project-calculator/domain"
	"github.com/mkrogh/project-calculator/service"
	"github.com/mkrogh/project-calculator/util"
	"github.com/mkrogh/project-calculator/util/middleware"

	"github.com/gorilla/mux"
)

// NodeHandler serves the CRUD and hours routes for one hierarchy level.
// Levels below project are parent-scoped: every {id} route also carries the
// parent id as {pid} and is checked for ownership.
type NodeHandler struct {
	svc    *service.NodeService
	level  domain.Level
	router *mux.Router
}

type hoursResult struct {
	Hours float64 `json:"hours"`
}

func segment(level domain.Level) string {
	return level.String() + "s"
}

func routePrefix(level domain.Level) string {
	parent, ok := level.Parent()
	if !ok {
		return "/" + segment(level)
	}
	return "/" + segment(parent) + "/{pid}/" + segment(level)
}

func (h *NodeHandler) pathID(r *http.Request, key string) (int64, bool) {
	v, ok := mux.Vars(r)[key]
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ids extracts the node id and, for scoped levels, the parent id from the
// route.
func (h *NodeHandler) ids(w http.ResponseWriter, r *http.Request) (id int64, parentID int64, ok bool) {
	id, ok = h.pathID(r, "id")
	if !ok {
		util.WriteStatus(w, http.StatusBadRequest)
		return 0, 0, false
	}
	parentID, ok = h.parentID(w, r)
	return id, parentID, ok
}

func (h *NodeHandler) parentID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	if h.level == domain.LevelProject {
		return 0, true
	}
	pid, ok := h.pathID(r, "pid")
	if !ok {
		util.WriteStatus(w, http.StatusBadRequest)
		return 0, false
	}
	return pid, true
}

// nodeFromBody builds an unvalidated node from the decoded JSON body with
// explicit type checks per field: name, description, deadline
// ("2006-01-02") and, on subtasks, estimated_hours. Missing required
// fields are left zero for Validate to report.
func (h *NodeHandler) nodeFromBody(w http.ResponseWriter, r *http.Request, parentID int64) (*domain.Node, bool) {
	jsonBody := r.Context().Value("json")
	body, ok := jsonBody.(map[string]interface{})
	if !ok {
		util.WriteStatus(w, http.StatusBadRequest)
		return nil, false
	}

	node := &domain.Node{
		Level:    h.level,
		ParentID: parentID,
	}

	if name, ok := body["name"].(string); ok {
		node.Name = name
	} else if _, present := body["name"]; present {
		util.WriteError(w, http.StatusBadRequest, "name must be a string")
		return nil, false
	}

	if raw, present := body["description"]; present {
		description, ok := raw.(string)
		if !ok {
			util.WriteError(w, http.StatusBadRequest, "description must be a string")
			return nil, false
		}
		node.Description = description
	}

	if raw, present := body["deadline"]; present && raw != nil {
		s, ok := raw.(string)
		if !ok {
			util.WriteError(w, http.StatusBadRequest, "deadline must be a string")
			return nil, false
		}
		deadline, err := domain.ParseDate(s)
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, err.Error())
			return nil, false
		}
		node.Deadline = &deadline
	}

	if h.level == domain.LevelSubTask {
		if raw, present := body["estimated_hours"]; present && raw != nil {
			hours, ok := raw.(float64)
			if !ok {
				util.WriteError(w, http.StatusBadRequest, "estimated_hours must be a number")
				return nil, false
			}
			node.EstimatedHours = &hours
		}
	}

	return node, true
}

func (h *NodeHandler) writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		util.WriteError(w, http.StatusBadRequest, validationErr.Error())
	case err == domain.ErrParentNotFound:
		parent, _ := h.level.Parent()
		util.WriteError(w, http.StatusNotFound, parent.String()+" not found")
	case err == domain.ErrNotFound, err == domain.ErrOwnershipMismatch:
		util.WriteNotFound(w)
	default:
		log.Println(err)
		util.WriteInternalServerError(w)
	}
}

func (h *NodeHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	parentID, ok := h.parentID(w, r)
	if !ok {
		return
	}
	ctx, cancel := util.GetContextWithTimeout(r.Context())
	defer cancel()
	nodes, err := h.svc.List(ctx, h.level, parentID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	util.WriteJson(w, nodes)
}

func (h *NodeHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, parentID, ok := h.ids(w, r)
	if !ok {
		return
	}
	ctx, cancel := util.GetContextWithTimeout(r.Context())
	defer cancel()
	node, err := h.svc.Get(ctx, h.level, id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if h.level != domain.LevelProject && node.ParentID != parentID {
		util.WriteNotFound(w)
		return
	}
	util.WriteJson(w, node)
}

func (h *NodeHandler) HoursHandler(w http.ResponseWriter, r *http.Request) {
	id, parentID, ok := h.ids(w, r)
	if !ok {
		return
	}
	if h.level != domain.LevelProject {
		ctx, cancel := util.GetContextWithTimeout(r.Context())
		defer cancel()
		if err := h.svc.ValidateOwnership(ctx, h.level, id, parentID); err != nil {
			h.writeServiceError(w, err)
			return
		}
	}
	ctx, cancel := util.GetContextWithTimeout(r.Context())
	defer cancel()
	hours, err := h.svc.EffectiveHours(ctx, h.level, id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	util.WriteJson(w, hoursResult{Hours: hours})
}

func (h *NodeHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	parentID, ok := h.parentID(w, r)
	if !ok {
		return
	}
	node, ok := h.nodeFromBody(w, r, parentID)
	if !ok {
		return
	}
	ctx, cancel := util.GetContextWithTimeout(r.Context())
	defer cancel()
	if err := h.svc.Create(ctx, node); err != nil {
		h.writeServiceError(w, err)
		return
	}
	util.WriteJson(w, node)
}

func (h *NodeHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, parentID, ok := h.ids(w, r)
	if !ok {
		return
	}
	node, ok := h.nodeFromBody(w, r, parentID)
	if !ok {
		return
	}
	node.ID = id
	ctx, cancel := util.GetContextWithTimeout(r.Context())
	defer cancel()
	if err := h.svc.Update(ctx, node); err != nil {
		h.writeServiceError(w, err)
		return
	}
	util.WriteOK(w)
}

func (h *NodeHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, parentID, ok := h.ids(w, r)
	if !ok {
		return
	}
	ctx, cancel := util.GetContextWithTimeout(r.Context())
	defer cancel()
	found, err := h.svc.Delete(ctx, h.level, id, parentID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if !found {
		util.WriteNotFound(w)
		return
	}
	util.WriteOK(w)
}

func NewNodeHandler(r *mux.Router, svc *service.NodeService, level domain.Level) *NodeHandler {
	h := &NodeHandler{
		svc:    svc,
		level:  level,
		router: r.NewRoute().Subrouter(),
	}

	prefix := routePrefix(level)
	h.router.HandleFunc(prefix, h.ListHandler).Methods("GET")
	h.router.HandleFunc(prefix+"/{id}/", h.GetHandler).Methods("GET")
	h.router.HandleFunc(prefix+"/{id}/hours", h.HoursHandler).Methods("GET")
	h.router.HandleFunc(prefix+"/{id}/delete", h.DeleteHandler).Methods("POST")

	subrouter := h.router.NewRoute().Subrouter()
	subrouter.Use(middleware.JsonBodyMiddleware)
	subrouter.HandleFunc(prefix+"/new", h.CreateHandler).Methods("POST")
	subrouter.HandleFunc(prefix+"/{id}/update", h.UpdateHandler).Methods("POST")
	return h
}
