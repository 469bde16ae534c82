package domain

import "time"

// DocumentContent points at the stored content of a document.
type DocumentContent struct {
	URI      string `json:"uri,omitempty" yaml:"uri,omitempty"`
	MimeType string `json:"mimeType,omitempty" yaml:"mimeType,omitempty"`
}

// Document is an indexed document in a data store branch. Read-only.
type Document struct {
	ID         string           `json:"id,omitempty" yaml:"id,omitempty"`
	Name       string           `json:"name,omitempty" yaml:"name,omitempty"`
	Content    *DocumentContent `json:"content,omitempty" yaml:"content,omitempty"`
	StructData map[string]any   `json:"structData,omitempty" yaml:"structData,omitempty"`
	IndexTime  string           `json:"indexTime,omitempty" yaml:"indexTime,omitempty"`
}

// URI returns the content URI or an empty string.
func (d *Document) URI() string {
	if d.Content == nil {
		return ""
	}
	return d.Content.URI
}

// IndexedAt parses IndexTime as RFC 3339.
func (d *Document) IndexedAt() (time.Time, bool) {
	if d.IndexTime == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, d.IndexTime)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Collection groups engines and data stores.
type Collection struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	DisplayName string `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	CreateTime  string `json:"createTime,omitempty" yaml:"createTime,omitempty"`
}

// Inventory is every collection, engine and data store visible in a location.
type Inventory struct {
	Collections []Collection `json:"collections" yaml:"collections"`
	Engines     []Engine     `json:"engines" yaml:"engines"`
	DataStores  []DataStore  `json:"data_stores" yaml:"data_stores"`
}
