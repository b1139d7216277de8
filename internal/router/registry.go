package router

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"

	"github.com/pterm/pterm"

	"github.com/thushan/shifter/internal/logger"
)

// MethodAny registers a route for every method.
const MethodAny = ""

type RouteInfo struct {
	Handler     http.HandlerFunc
	Description string
	Method      string
	Order       int
	IsProxy     bool
}

// Pattern is the net/http ServeMux pattern, e.g. "POST /v1/chat/completions".
func (ri RouteInfo) Pattern(route string) string {
	if ri.Method == MethodAny {
		return route
	}
	return ri.Method + " " + route
}

type RouteRegistry struct {
	routes   map[string]RouteInfo
	logger   logger.StyledLogger
	out      io.Writer
	orderSeq int
}

func NewRouteRegistry(logger logger.StyledLogger) *RouteRegistry {
	return &RouteRegistry{
		routes: make(map[string]RouteInfo),
		logger: logger,
		out:    os.Stdout,
	}
}

// SetOutput redirects the route table, mainly for tests.
func (r *RouteRegistry) SetOutput(w io.Writer) {
	r.out = w
}

func (r *RouteRegistry) Register(route string, handler http.HandlerFunc, description string) {
	r.RegisterWithMethod(route, handler, description, http.MethodGet)
}

func (r *RouteRegistry) RegisterWithMethod(route string, handler http.HandlerFunc, description, method string) {
	r.register(route, handler, description, method, false)
}

// RegisterProxyRoute marks the route as forwarding to the backend.
func (r *RouteRegistry) RegisterProxyRoute(route string, handler http.HandlerFunc, description, method string) {
	r.register(route, handler, description, method, true)
}

func (r *RouteRegistry) register(route string, handler http.HandlerFunc, description, method string, isProxy bool) {
	info := RouteInfo{
		Handler:     handler,
		Description: description,
		Method:      method,
		Order:       r.orderSeq,
		IsProxy:     isProxy,
	}
	r.routes[info.Pattern(route)] = info
	r.orderSeq++
}

// WireUp installs every route on mux, wrapping proxy routes with wrapProxy
// when given, and prints the route table.
func (r *RouteRegistry) WireUp(mux *http.ServeMux, wrapProxy func(http.Handler) http.Handler) {
	for pattern, info := range r.routes {
		var handler http.Handler = info.Handler
		if info.IsProxy && wrapProxy != nil {
			handler = wrapProxy(handler)
		}
		mux.Handle(pattern, handler)
	}
	r.logRoutesTable()
}

func (r *RouteRegistry) GetRoutes() map[string]RouteInfo {
	return r.routes
}

func (r *RouteRegistry) sortedPatterns() []string {
	patterns := make([]string, 0, len(r.routes))
	for pattern := range r.routes {
		patterns = append(patterns, pattern)
	}
	sort.Slice(patterns, func(i, j int) bool {
		return r.routes[patterns[i]].Order < r.routes[patterns[j]].Order
	})
	return patterns
}

func (r *RouteRegistry) logRoutesTable() {
	if len(r.routes) == 0 {
		return
	}

	tableData := [][]string{
		{"ROUTE", "METHOD", "DESCRIPTION"},
	}
	for _, pattern := range r.sortedPatterns() {
		info := r.routes[pattern]
		method := info.Method
		if method == MethodAny {
			method = "*"
		}
		route := pattern
		if info.Method != MethodAny {
			route = pattern[len(info.Method)+1:]
		}
		tableData = append(tableData, []string{route, method, info.Description})
	}

	r.logger.InfoWithCount("Registered web routes", len(tableData)-1)
	tableString, _ := pterm.DefaultTable.WithHasHeader().WithData(tableData).Srender()
	fmt.Fprintln(r.out, tableString)
}
