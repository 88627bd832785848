package v1

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/riptano/statuspage/internal/models"
	"github.com/riptano/statuspage/internal/service"
)

// fieldPolicy declares, per serialized field, how the API may use it. The
// tables below are the single place a field's exposure, writability, and
// filterability are decided; there is no runtime introspection.
type fieldPolicy struct {
	Exposed    bool
	Writable   bool
	Filterable bool
}

var statusFields = map[string]fieldPolicy{
	"name":        {Exposed: true},
	"description": {Exposed: true},
	"image":       {Exposed: true},
	"created":     {Exposed: true},
	"updated":     {Exposed: true},
}

var incidentFields = map[string]fieldPolicy{
	"name":    {Exposed: true, Writable: true},
	"hidden":  {Exposed: true, Writable: true},
	"user":    {Exposed: true},
	"status":  {Exposed: true, Filterable: true},
	"updates": {Exposed: true, Filterable: true},
	"created": {Exposed: true, Filterable: true},
	"updated": {Exposed: true},
}

var updateFields = map[string]fieldPolicy{
	"incident":    {Exposed: true, Writable: true, Filterable: true},
	"status":      {Exposed: true, Writable: true, Filterable: true},
	"description": {Exposed: true, Writable: true},
	"user":        {Exposed: true},
	"created":     {Exposed: true, Filterable: true},
	"updated":     {Exposed: true, Filterable: true},
}

// mustValidFieldPolicies sanity-checks the policy tables once, at handler
// construction. A writable or filterable field that is not exposed is a
// contradiction in the resource definition, not a runtime condition.
func mustValidFieldPolicies() {
	for resource, table := range map[string]map[string]fieldPolicy{
		"status":         statusFields,
		"incident":       incidentFields,
		"incidentupdate": updateFields,
	} {
		for field, policy := range table {
			if policy.Writable && !policy.Exposed {
				panic(fmt.Sprintf("field policy: %s.%s is writable but not exposed", resource, field))
			}
			if policy.Filterable && !policy.Exposed {
				panic(fmt.Sprintf("field policy: %s.%s is filterable but not exposed", resource, field))
			}
		}
	}
}

// filterParams maps a query parameter onto the resource field it filters.
var filterParams = map[string]string{
	"created_after":  "created",
	"created_before": "created",
	"updated_after":  "updated",
	"updated_before": "updated",
	"status":         "status",
	"incident":       "incident",
	"has_updates":    "updates",
	"limit":          "",
}

// checkFilterable rejects query parameters that name a known field the
// resource does not allow filtering on. Parameters that match nothing are
// ignored, matching the usual REST posture.
func checkFilterable(c *gin.Context, table map[string]fieldPolicy) error {
	for param := range c.Request.URL.Query() {
		field, known := filterParams[param]
		if !known || field == "" {
			if policy, isField := table[param]; isField && !policy.Filterable {
				return fmt.Errorf("field %q is not filterable: %w", param, service.ErrValidation)
			}
			continue
		}
		if policy, isField := table[field]; isField && !policy.Filterable {
			return fmt.Errorf("field %q is not filterable: %w", field, service.ErrValidation)
		}
	}
	return nil
}

func parseTimeParam(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("malformed %s value %q: %w", name, raw, service.ErrValidation)
	}
	return &t, nil
}

func parseBoolParam(c *gin.Context, name string) (*bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("malformed %s value %q: %w", name, raw, service.ErrValidation)
	}
	return &b, nil
}

func parseIntParam(c *gin.Context, name string, defaultValue int64) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed %s value %q: %w", name, raw, service.ErrValidation)
	}
	return n, nil
}

// parseIncidentFilter builds an incident list filter from the query string.
// Every incident route sits behind the API-key middleware, so hidden
// incidents are always in scope here; only the public dashboard excludes
// them.
func parseIncidentFilter(c *gin.Context) (models.IncidentFilter, error) {
	filter := models.IncidentFilter{IncludeHidden: true}

	if err := checkFilterable(c, incidentFields); err != nil {
		return filter, err
	}

	var err error
	if filter.CreatedAfter, err = parseTimeParam(c, "created_after"); err != nil {
		return filter, err
	}
	if filter.CreatedBefore, err = parseTimeParam(c, "created_before"); err != nil {
		return filter, err
	}
	if filter.HasUpdates, err = parseBoolParam(c, "has_updates"); err != nil {
		return filter, err
	}
	filter.Status = c.Query("status")

	limit, err := parseIntParam(c, "limit", 0)
	if err != nil {
		return filter, err
	}
	filter.Limit = int(limit)
	return filter, nil
}

// parseUpdateFilter builds an update list filter from the query string.
func parseUpdateFilter(c *gin.Context) (models.UpdateFilter, error) {
	filter := models.UpdateFilter{}

	if err := checkFilterable(c, updateFields); err != nil {
		return filter, err
	}

	var err error
	if filter.CreatedAfter, err = parseTimeParam(c, "created_after"); err != nil {
		return filter, err
	}
	if filter.CreatedBefore, err = parseTimeParam(c, "created_before"); err != nil {
		return filter, err
	}
	if filter.UpdatedAfter, err = parseTimeParam(c, "updated_after"); err != nil {
		return filter, err
	}
	if filter.UpdatedBefore, err = parseTimeParam(c, "updated_before"); err != nil {
		return filter, err
	}
	filter.Status = c.Query("status")

	if filter.IncidentID, err = parseIntParam(c, "incident", 0); err != nil {
		return filter, err
	}
	limit, err := parseIntParam(c, "limit", 0)
	if err != nil {
		return filter, err
	}
	filter.Limit = int(limit)
	return filter, nil
}
