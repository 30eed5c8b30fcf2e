package v1

import (
	ez_uuid "github.com/kommunalcrm/treasury/internal/uuid"
)

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// QueryOrganization is the filter for the organization all calculated endpoints need.
type QueryOrganization struct {
	Organization string `form:"organization" example:"OV Musterstadt"` // Name of the organization
}

// Pagination contains information about the pagination for collection endpoint responses.
type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}
