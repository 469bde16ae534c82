package domain

import (
	"fmt"
	"strings"
)

// DefaultCollection is the collection every project gets.
const DefaultCollection = "default_collection"

// DefaultBranch is the branch documents are imported into.
const DefaultBranch = "default_branch"

// Segment type names used in resource paths.
const (
	SegmentProjects    = "projects"
	SegmentLocations   = "locations"
	SegmentCollections = "collections"
	SegmentBranches    = "branches"
	SegmentSchemas     = "schemas"
	SegmentOperations  = "operations"
)

// ResourceKind is the collection-level segment naming a resource type.
type ResourceKind string

const (
	// KindEngines identifies search engines (apps).
	KindEngines ResourceKind = "engines"
	// KindDataStores identifies data stores.
	KindDataStores ResourceKind = "dataStores"
)

// String returns the segment name.
func (k ResourceKind) String() string {
	return string(k)
}

// Segment is one (type, value) pair of a resource path.
type Segment struct {
	Type  string
	Value string
}

// ResourcePath is a parsed hierarchical resource name such as
// projects/p/locations/l/collections/c/dataStores/d.
type ResourcePath struct {
	segments []Segment
}

// ParseResourcePath parses a slash-delimited resource name.
// The name must consist of non-empty segments in (type, value) pairs.
func ParseResourcePath(name string) (ResourcePath, error) {
	if name == "" {
		return ResourcePath{}, fmt.Errorf("%w: empty resource name", ErrInvalidInput)
	}

	parts := strings.Split(name, "/")
	if len(parts)%2 != 0 {
		return ResourcePath{}, fmt.Errorf("%w: resource name %q has an odd number of segments", ErrInvalidInput, name)
	}

	segments := make([]Segment, 0, len(parts)/2)
	for i := 0; i < len(parts); i += 2 {
		if parts[i] == "" || parts[i+1] == "" {
			return ResourcePath{}, fmt.Errorf("%w: resource name %q has an empty segment", ErrInvalidInput, name)
		}
		segments = append(segments, Segment{Type: parts[i], Value: parts[i+1]})
	}

	return ResourcePath{segments: segments}, nil
}

// LocationPath returns projects/{project}/locations/{location}.
func LocationPath(project, location string) ResourcePath {
	return ResourcePath{segments: []Segment{
		{Type: SegmentProjects, Value: project},
		{Type: SegmentLocations, Value: location},
	}}
}

// CollectionPath returns projects/{project}/locations/{location}/collections/{collection}.
func CollectionPath(project, location, collection string) ResourcePath {
	return LocationPath(project, location).Child(SegmentCollections, collection)
}

// Child returns a copy of the path with one more (type, value) pair appended.
func (p ResourcePath) Child(segmentType, value string) ResourcePath {
	segments := make([]Segment, len(p.segments), len(p.segments)+1)
	copy(segments, p.segments)
	return ResourcePath{segments: append(segments, Segment{Type: segmentType, Value: value})}
}

// Value returns the value following the named segment.
// It fails with ErrSegmentNotFound if the segment is absent.
func (p ResourcePath) Value(segmentType string) (string, error) {
	for _, s := range p.segments {
		if s.Type == segmentType {
			return s.Value, nil
		}
	}
	return "", fmt.Errorf("%w: %q in %q", ErrSegmentNotFound, segmentType, p.String())
}

// ID returns the value of the last segment.
func (p ResourcePath) ID() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[len(p.segments)-1].Value
}

// String serialises the path back to its slash-delimited form.
func (p ResourcePath) String() string {
	parts := make([]string, 0, len(p.segments)*2)
	for _, s := range p.segments {
		parts = append(parts, s.Type, s.Value)
	}
	return strings.Join(parts, "/")
}

// ResourceName builds the full name of a resource in a collection.
func ResourceName(project, location, collection string, kind ResourceKind, id string) string {
	return CollectionPath(project, location, collection).Child(kind.String(), id).String()
}

// ResolveName expands a bare ID into a full resource name using the config's
// project, location and collection. Arguments containing "/" are treated as
// full names and returned unchanged.
func ResolveName(idOrName string, cfg Config, kind ResourceKind) string {
	if strings.Contains(idOrName, "/") {
		return idOrName
	}
	return ResourceName(cfg.ProjectID, cfg.Location, cfg.CollectionOrDefault(), kind, idOrName)
}

// ShortName returns the last path element of a resource name.
func ShortName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// BranchName returns {dataStoreName}/branches/{branch}.
func BranchName(dataStoreName, branch string) string {
	return dataStoreName + "/" + SegmentBranches + "/" + branch
}

// SchemaName returns the default schema name of a data store.
func SchemaName(dataStoreName string) string {
	return dataStoreName + "/" + SegmentSchemas + "/default_schema"
}
