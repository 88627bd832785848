package v1

import "github.com/riptano/statuspage/internal/models"

// ModelToStatusResponse converts a catalog entry to its response DTO.
// Passing nil through is deliberate: an incident without updates serializes
// its current status as null.
func ModelToStatusResponse(model *models.Status) *StatusResponse {
	if model == nil {
		return nil
	}
	return &StatusResponse{
		Name:        model.Name,
		Description: model.Description,
		Image:       model.Image,
		Created:     model.CreatedAt,
		Updated:     model.UpdatedAt,
	}
}

// ModelsToStatusResponses converts a slice of catalog entries.
func ModelsToStatusResponses(statuses []*models.Status) []*StatusResponse {
	responses := make([]*StatusResponse, len(statuses))
	for i, model := range statuses {
		responses[i] = ModelToStatusResponse(model)
	}
	return responses
}

// ModelToUpdateResponse converts an update to its response DTO.
func ModelToUpdateResponse(model *models.Update) *IncidentUpdateResponse {
	return &IncidentUpdateResponse{
		ID:          model.ID,
		Incident:    model.IncidentID,
		Status:      ModelToStatusResponse(model.Status),
		User:        model.UserName,
		Description: model.Description,
		Created:     model.CreatedAt,
		Updated:     model.UpdatedAt,
	}
}

// ModelsToUpdateResponses converts a slice of updates.
func ModelsToUpdateResponses(updates []*models.Update) []*IncidentUpdateResponse {
	responses := make([]*IncidentUpdateResponse, len(updates))
	for i, model := range updates {
		responses[i] = ModelToUpdateResponse(model)
	}
	return responses
}

// ModelToIncidentResponse converts an incident, embedding its current
// status and update log.
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	return &IncidentResponse{
		ID:      model.ID,
		Name:    model.Name,
		Hidden:  model.Hidden,
		User:    model.UserName,
		Status:  ModelToStatusResponse(model.CurrentStatus),
		Updates: ModelsToUpdateResponses(model.Updates),
		Created: model.CreatedAt,
		Updated: model.UpdatedAt,
	}
}

// ModelsToIncidentResponses converts a slice of incidents.
func ModelsToIncidentResponses(incidents []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(incidents))
	for i, model := range incidents {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

// DTOToIncidentModel converts a create request into a domain incident. The
// owner and timestamps are not mapped: the service injects the
// authenticated user and the database sets both timestamps.
func DTOToIncidentModel(dto CreateIncidentRequest) *models.Incident {
	return &models.Incident{
		Name:   dto.Name,
		Hidden: dto.Hidden,
	}
}

// DTOToUpdateModel converts a create request into a domain update. Same
// rules as incidents: owner and timestamps are server concerns.
func DTOToUpdateModel(dto CreateIncidentUpdateRequest) *models.Update {
	return &models.Update{
		ID:          dto.ID,
		IncidentID:  dto.Incident,
		StatusName:  dto.Status,
		Description: dto.Description,
	}
}
