// Package loader has the workspace file source.
package loader

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adlens/adlens/internal/contract"
	"github.com/adlens/adlens/schema"
)

// Source defines the necessary operations for loading campaign workspaces.
// This allows the core analysis logic to be tested without needing real workspace files.
type Source = contract.WorkspaceSource

// WorkspaceFileNames are the file names probed, in order, when a directory
// is given instead of a workspace file.
var WorkspaceFileNames = []string{"workspace.json", "adlens.json"}

// SplitFileNames are the per-section files of a split workspace directory,
// in the order they are read and fingerprinted. Any subset loads as long as
// at least one is present.
var SplitFileNames = []string{"campaigns.json", "paths.json", "experiments.json", "segments.json"}

// FileSource implements the WorkspaceSource interface by reading JSON
// workspace exports from the local filesystem.
type FileSource struct{}

var _ contract.WorkspaceSource = &FileSource{} // Compile-time check

// NewFileSource creates a new instance of the local file source.
func NewFileSource() *FileSource {
	return &FileSource{}
}

// Resolve returns the canonical absolute path of the workspace behind the
// given path. A directory resolves to the first workspace file it contains,
// or to the directory itself when it holds a split workspace.
func (s *FileSource) Resolve(_ context.Context, path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	absPath = filepath.Clean(absPath)

	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("workspace path %q is not accessible: %w", absPath, err)
	}

	if !info.IsDir() {
		return absPath, nil
	}

	for _, name := range WorkspaceFileNames {
		candidate := filepath.Join(absPath, name)
		if fi, statErr := os.Stat(candidate); statErr == nil && !fi.IsDir() {
			return candidate, nil
		}
	}

	for _, name := range SplitFileNames {
		candidate := filepath.Join(absPath, name)
		if fi, statErr := os.Stat(candidate); statErr == nil && !fi.IsDir() {
			return absPath, nil
		}
	}

	return "", fmt.Errorf("no workspace found in %q. Provide a .json export, a directory containing one of: %s, or a split layout with at least one of: %s",
		absPath, strings.Join(WorkspaceFileNames, ", "), strings.Join(SplitFileNames, ", "))
}

// Load reads and decodes the workspace at the given path, which is either a
// single bundle file or a split directory. Enum fields are normalized to
// lower case so exports from other tools load cleanly, and touchpoints are
// re-sorted chronologically since every attribution model depends on path
// order.
func (s *FileSource) Load(_ context.Context, path string) (*schema.Workspace, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("read workspace %q: %w", path, err)
	}

	var ws *schema.Workspace
	if info.IsDir() {
		ws, err = loadSplitWorkspace(path)
	} else {
		ws, err = loadBundleWorkspace(path)
	}
	if err != nil {
		return nil, err
	}

	if ws.Name == "" {
		base := filepath.Base(path)
		ws.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	normalizeWorkspace(ws)
	if err := validateWorkspace(ws); err != nil {
		return nil, fmt.Errorf("invalid workspace %q: %w", path, err)
	}

	return ws, nil
}

func loadBundleWorkspace(path string) (*schema.Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workspace %q: %w", path, err)
	}

	var ws schema.Workspace
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("decode workspace %q: %w", path, err)
	}
	return &ws, nil
}

// loadSplitWorkspace assembles a workspace from per-section JSON arrays in a
// directory. Missing sections stay empty; an entirely empty directory is an
// error since it cannot have been a workspace export.
func loadSplitWorkspace(dir string) (*schema.Workspace, error) {
	var ws schema.Workspace
	sections := map[string]any{
		"campaigns.json":   &ws.Campaigns,
		"paths.json":       &ws.Paths,
		"experiments.json": &ws.Experiments,
		"segments.json":    &ws.Segments,
	}

	found := 0
	for _, name := range SplitFileNames {
		partPath := filepath.Join(dir, name)
		data, err := os.ReadFile(partPath)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read workspace part %q: %w", partPath, err)
		}
		if err := json.Unmarshal(data, sections[name]); err != nil {
			return nil, fmt.Errorf("decode workspace part %q: %w", partPath, err)
		}
		found++
	}

	if found == 0 {
		return nil, fmt.Errorf("no workspace parts found in %q; expected at least one of: %s",
			dir, strings.Join(SplitFileNames, ", "))
	}
	return &ws, nil
}

// Fingerprint returns the hex SHA-256 of the workspace contents: the file
// bytes for a bundle, or the name-prefixed bytes of every present part for
// a split directory.
func (s *FileSource) Fingerprint(_ context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("fingerprint workspace %q: %w", path, err)
	}

	if !info.IsDir() {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("fingerprint workspace %q: %w", path, err)
		}
		sum := sha256.Sum256(data)
		return hex.EncodeToString(sum[:]), nil
	}

	h := sha256.New()
	found := 0
	for _, name := range SplitFileNames {
		partPath := filepath.Join(path, name)
		data, err := os.ReadFile(partPath)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("fingerprint workspace part %q: %w", partPath, err)
		}
		h.Write([]byte(name))
		h.Write(data)
		found++
	}
	if found == 0 {
		return "", fmt.Errorf("no workspace parts found in %q; expected at least one of: %s",
			path, strings.Join(SplitFileNames, ", "))
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// normalizeWorkspace lowercases enum-valued fields and restores chronological
// touchpoint order within each conversion path.
func normalizeWorkspace(ws *schema.Workspace) {
	for ci := range ws.Campaigns {
		c := &ws.Campaigns[ci]
		c.Status = schema.FlightStatus(strings.ToLower(string(c.Status)))
		for fi := range c.Flights {
			f := &c.Flights[fi]
			f.Status = schema.FlightStatus(strings.ToLower(string(f.Status)))
		}
	}
	for si := range ws.Segments {
		seg := &ws.Segments[si]
		seg.Category = schema.SegmentCategory(strings.ToLower(string(seg.Category)))
	}
	for pi := range ws.Paths {
		p := &ws.Paths[pi]
		for ti := range p.Touchpoints {
			tp := &p.Touchpoints[ti]
			tp.ChannelType = schema.ChannelType(strings.ToLower(string(tp.ChannelType)))
		}
		sort.SliceStable(p.Touchpoints, func(a, b int) bool {
			return p.Touchpoints[a].Timestamp.Before(p.Touchpoints[b].Timestamp)
		})
	}
}

// validateWorkspace enforces the structural invariants the engines rely on:
// unique identifiers and known enum values. Anything softer (missing dates,
// absent performance blocks) is the engines' business to tolerate.
func validateWorkspace(ws *schema.Workspace) error {
	flightIDs := make(map[string]struct{})
	for _, c := range ws.Campaigns {
		if c.Status != "" {
			if _, ok := schema.ValidFlightStatuses[c.Status]; !ok {
				return fmt.Errorf("campaign %q has unknown status %q", c.ID, c.Status)
			}
		}
		for _, f := range c.Flights {
			if f.ID == "" {
				return fmt.Errorf("campaign %q contains a flight without an id", c.ID)
			}
			if _, dup := flightIDs[f.ID]; dup {
				return fmt.Errorf("duplicate flight id %q", f.ID)
			}
			flightIDs[f.ID] = struct{}{}
			if f.Status != "" {
				if _, ok := schema.ValidFlightStatuses[f.Status]; !ok {
					return fmt.Errorf("flight %q has unknown status %q", f.ID, f.Status)
				}
			}
		}
	}

	segmentIDs := make(map[string]struct{})
	for _, seg := range ws.Segments {
		if seg.ID == "" {
			return fmt.Errorf("segment %q has no id", seg.Name)
		}
		if _, dup := segmentIDs[seg.ID]; dup {
			return fmt.Errorf("duplicate segment id %q", seg.ID)
		}
		segmentIDs[seg.ID] = struct{}{}
		if seg.Category != "" {
			if _, ok := schema.ValidSegmentCategories[seg.Category]; !ok {
				return fmt.Errorf("segment %q has unknown category %q", seg.ID, seg.Category)
			}
		}
	}

	for _, p := range ws.Paths {
		for _, tp := range p.Touchpoints {
			if tp.ChannelType == "" {
				continue
			}
			if _, ok := schema.ValidChannelTypes[tp.ChannelType]; !ok {
				return fmt.Errorf("path %q has unknown channel type %q", p.ID, tp.ChannelType)
			}
		}
	}

	return nil
}
