package storage

import "crime-report/models"

// IncidentSource is the interface any record-store backend must satisfy.
// FetchByCategory returns every row whose primary category contains the given
// substring, with the store's native column set mapped onto the incident model.
type IncidentSource interface {
	FetchByCategory(substring string) (*models.Dataset, error)
	Close() error
}

// IncidentWriter is the interface for exporting the filtered dataset.
type IncidentWriter interface {
	Write(incidents []*models.Incident) error
	Close() error
}
