package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"
	"philcali.me/inventory/internal/exceptions"
	"philcali.me/inventory/internal/routes/filters"
)

type Route func(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error)

type Service interface {
	GetRoutes() map[string]Route
}

type contextKey string

// ParamsKey holds the matched path parameters on the route context.
const ParamsKey contextKey = "Params"

type CachedMatcher struct {
	Matcher    *regexp.Regexp
	ParamNames []string
	Mutex      *sync.Mutex
}

type CachedRoute struct {
	Method  string
	Path    string
	Route   Route
	Matcher *CachedMatcher
}

func normalizePath(path string) string {
	if len(path) > 1 {
		return strings.TrimSuffix(path, "/")
	}
	return path
}

func (cr *CachedMatcher) Refresh(path string) *regexp.Regexp {
	cr.Mutex.Lock()
	defer cr.Mutex.Unlock()
	if cr.Matcher == nil {
		namex := regexp.MustCompile(":[^/]+")
		regexPath := namex.ReplaceAllStringFunc(path, func(found string) string {
			cr.ParamNames = append(cr.ParamNames, found[1:])
			return "([^/]+)"
		})
		cr.Matcher = regexp.MustCompile("^" + regexPath + "$")
	}
	return cr.Matcher
}

func (cr *CachedRoute) MatchEvent(event events.APIGatewayV2HTTPRequest) (map[string]string, bool) {
	if event.RequestContext.HTTP.Method != cr.Method {
		return nil, false
	}
	rawPath := normalizePath(event.RawPath)
	if rawPath == cr.Path {
		return map[string]string{}, true
	}
	matcher := cr.Matcher.Refresh(cr.Path)
	values := matcher.FindStringSubmatch(rawPath)
	if values == nil {
		return nil, false
	}
	params := make(map[string]string, len(cr.Matcher.ParamNames))
	for i, p := range cr.Matcher.ParamNames {
		params[p] = values[i+1]
	}
	return params, true
}

type Router struct {
	Filters []filters.RequestFilter
	Routes  []CachedRoute
	Logger  zerolog.Logger
}

func NewRouter(logger zerolog.Logger, services ...Service) *Router {
	var routes []CachedRoute
	var fltrs []filters.RequestFilter
	for _, service := range services {
		for composite, route := range service.GetRoutes() {
			parts := strings.SplitN(composite, ":", 2)
			cachedRoute := CachedRoute{
				Method: parts[0],
				Path:   normalizePath(parts[1]),
				Route:  route,
				Matcher: &CachedMatcher{
					Mutex: &sync.Mutex{},
				},
			}
			routes = append(routes, cachedRoute)
		}
	}
	fltrs = append(fltrs, filters.DefaultCorsFilter())
	return &Router{
		Routes:  routes,
		Filters: fltrs,
		Logger:  logger,
	}
}

func (r *Router) translateError(event events.APIGatewayV2HTTPRequest, err error) events.APIGatewayV2HTTPResponse {
	statusCode := exceptions.StatusCode(err)
	if statusCode >= http.StatusInternalServerError {
		r.Logger.Error().
			Err(err).
			Str("method", event.RequestContext.HTTP.Method).
			Str("path", event.RawPath).
			Msg("request failed")
		err = exceptions.InternalServer("Internal server error")
	}
	// 304 responses never carry a body
	if statusCode == http.StatusNotModified {
		return events.APIGatewayV2HTTPResponse{StatusCode: statusCode}
	}
	payload := map[string]interface{}{"message": err.Error()}
	var unprocessable *exceptions.UnprocessableError
	if errors.As(err, &unprocessable) && len(unprocessable.Fields) > 0 {
		payload["errors"] = unprocessable.Fields
	}
	body, _ := json.Marshal(payload)
	headers := map[string]string{
		"Content-Type":   "application/json",
		"Content-Length": strconv.Itoa(len(body)),
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Body:       string(body),
		Headers:    headers,
	}
}

func (r *Router) Invoke(event events.APIGatewayV2HTTPRequest, ctx context.Context) events.APIGatewayV2HTTPResponse {
	filterContext := filters.DefaultFilterContext(event, ctx)
	for _, filter := range r.Filters {
		updatedContext, broken := filter.Filter(filterContext)
		if broken {
			return *updatedContext.Response
		}
		filterContext = updatedContext
	}
	return r.decorate(r.route(event, filterContext))
}

func (r *Router) route(event events.APIGatewayV2HTTPRequest, filterContext *filters.FilterContext) events.APIGatewayV2HTTPResponse {
	for _, route := range r.Routes {
		if params, ok := route.MatchEvent(*filterContext.Request); ok {
			resp, err := route.Route(event, context.WithValue(*filterContext.Context, ParamsKey, params))
			if err != nil {
				return r.translateError(event, err)
			}
			return resp
		}
	}
	return r.translateError(event, exceptions.NotFound("Route", event.RawPath))
}

func (r *Router) decorate(response events.APIGatewayV2HTTPResponse) events.APIGatewayV2HTTPResponse {
	for _, filter := range r.Filters {
		if decorator, ok := filter.(filters.ResponseFilter); ok {
			decorator.Decorate(&response)
		}
	}
	return response
}
