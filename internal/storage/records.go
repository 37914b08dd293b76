// Package storage holds the document format shared by the blob-backed
// watch-record stores.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"feed_player/internal/domain"
)

const documentVersion = 1

// Document is the persisted form of the watch-record set.
type Document struct {
	Version   int                  `json:"version"`
	UpdatedAt time.Time            `json:"updated_at"`
	Videos    []domain.WatchRecord `json:"videos"`
}

func Encode(records []domain.WatchRecord, now time.Time) ([]byte, error) {
	if records == nil {
		records = []domain.WatchRecord{}
	}
	data, err := json.MarshalIndent(Document{
		Version:   documentVersion,
		UpdatedAt: now.UTC(),
		Videos:    records,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode watch records: %w", err)
	}
	return data, nil
}

// Decode parses data. Empty input yields an empty set.
func Decode(data []byte) ([]domain.WatchRecord, error) {
	if len(data) == 0 {
		return []domain.WatchRecord{}, nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode watch records: %w", err)
	}
	if doc.Version > documentVersion {
		return nil, fmt.Errorf("decode watch records: unsupported version %d", doc.Version)
	}
	if doc.Videos == nil {
		doc.Videos = []domain.WatchRecord{}
	}
	return doc.Videos, nil
}
