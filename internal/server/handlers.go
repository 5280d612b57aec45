package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/LdDl/osmroute"
	"github.com/pkg/errors"
)

// RouteHandlers serves route requests over single shared graph.
// Every request runs its own search, so requests are served concurrently.
type RouteHandlers struct {
	graph         *osmroute.Graph
	metrics       *Metrics
	logger        *slog.Logger
	maxExpansions int
}

type routeResponse struct {
	StartNode      int64        `json:"start_node"`
	EndNode        int64        `json:"end_node"`
	Distance       float64      `json:"distance"`
	DistanceMeters float64      `json:"distance_meters"`
	Expanded       int          `json:"expanded"`
	Path           [][2]float64 `json:"path"`
	Headings       []float64    `json:"headings"`
}

type graphStatsResponse struct {
	Nodes         int           `json:"nodes"`
	RoutableNodes int           `json:"routable_nodes"`
	Ways          int           `json:"ways"`
	MetricScale   float64       `json:"metric_scale"`
	RoutableTypes []string      `json:"routable_types"`
	Bound         [2][2]float64 `json:"bound"`
}

func (h *RouteHandlers) handleRoute(w http.ResponseWriter, r *http.Request) {
	planner, ok := h.plan(w, r)
	if !ok {
		return
	}
	path, _ := planner.Path()
	points := path.Points()
	response := routeResponse{
		StartNode:      int64(planner.StartNode()),
		EndNode:        int64(planner.EndNode()),
		Distance:       planner.GetDistance(),
		DistanceMeters: planner.GetDistanceMeters(),
		Expanded:       planner.Expanded(),
		Path:           make([][2]float64, len(points)),
		Headings:       path.Headings(),
	}
	for i, pt := range points {
		response.Path[i] = [2]float64{pt.X, pt.Y}
	}
	respondJSON(w, http.StatusOK, response)
}

func (h *RouteHandlers) handleRouteGeoJSON(w http.ResponseWriter, r *http.Request) {
	planner, ok := h.plan(w, r)
	if !ok {
		return
	}
	path, _ := planner.Path()
	b, err := osmroute.PrepareGeoJSONRoute(path, h.graph.MetricScale())
	if err != nil {
		h.logger.Error("route marshalling failed", "error", err)
		respondError(w, http.StatusInternalServerError, "can't prepare geojson")
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (h *RouteHandlers) handleGraphStats(w http.ResponseWriter, r *http.Request) {
	roadTypes := h.graph.RoutableTypes()
	names := make([]string, len(roadTypes))
	for i, roadType := range roadTypes {
		names[i] = roadType.String()
	}
	bound := h.graph.Bound()
	respondJSON(w, http.StatusOK, graphStatsResponse{
		Nodes:         h.graph.NodesNum(),
		RoutableNodes: h.graph.RoutableNodesNum(),
		Ways:          len(h.graph.Ways()),
		MetricScale:   h.graph.MetricScale(),
		RoutableTypes: names,
		Bound:         [2][2]float64{{bound.Min.X(), bound.Min.Y()}, {bound.Max.X(), bound.Max.Y()}},
	})
}

// plan parses query, runs search and writes error response on failure
func (h *RouteHandlers) plan(w http.ResponseWriter, r *http.Request) (*osmroute.RoutePlanner, bool) {
	coords, err := parseCoordinates(r)
	if err != nil {
		h.metrics.observeRejected(outcomeInvalid)
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	planner, err := osmroute.NewRoutePlanner(h.graph, coords[0], coords[1], coords[2], coords[3], osmroute.WithMaxExpansions(h.maxExpansions))
	if err != nil {
		if errors.Is(err, osmroute.ErrOutOfRange) {
			h.metrics.observeRejected(outcomeInvalid)
			respondError(w, http.StatusBadRequest, err.Error())
			return nil, false
		}
		h.metrics.observeRejected(outcomeError)
		h.logger.Error("can't resolve route endpoints", "error", err)
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return nil, false
	}
	st := time.Now()
	err = planner.AStarSearch()
	elapsed := time.Since(st)
	if err != nil {
		if osmroute.IsNoPathFound(err) {
			h.metrics.observeSearch(outcomeNoPath, planner.Expanded(), elapsed)
			respondJSON(w, http.StatusNotFound, map[string]any{
				"error":      err.Error(),
				"start_node": int64(planner.StartNode()),
				"end_node":   int64(planner.EndNode()),
				"expanded":   planner.Expanded(),
			})
			return nil, false
		}
		h.metrics.observeRejected(outcomeError)
		h.logger.Error("search failed", "error", err)
		respondError(w, http.StatusInternalServerError, "search failed")
		return nil, false
	}
	h.metrics.observeSearch(outcomeFound, planner.Expanded(), elapsed)
	h.logger.Debug("route found",
		"start_node", planner.StartNode(),
		"end_node", planner.EndNode(),
		"distance_meters", planner.GetDistanceMeters(),
		"expanded", planner.Expanded(),
	)
	return planner, true
}

func parseCoordinates(r *http.Request) ([4]float64, error) {
	coords := [4]float64{}
	query := r.URL.Query()
	for i, name := range []string{"sx", "sy", "ex", "ey"} {
		raw := query.Get(name)
		if raw == "" {
			return coords, errors.Errorf("query parameter '%s' is required", name)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return coords, errors.Errorf("query parameter '%s' must be a number, got '%s'", name, raw)
		}
		coords[i] = v
	}
	return coords, nil
}
