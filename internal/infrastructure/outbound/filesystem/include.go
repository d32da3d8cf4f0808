package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	includeTag      = "!include"
	maxIncludeDepth = 10
)

// includeResolver replaces !include tagged profile values with file contents.
//
// YAML files are spliced in as nodes, ".list" files become a sequence of their
// non-blank lines (lines starting with '#' are skipped), anything else becomes
// a string with trailing newlines trimmed.
type includeResolver struct {
	baseDir string
}

func newIncludeResolver(baseDir string) *includeResolver {
	return &includeResolver{baseDir: baseDir}
}

func (r *includeResolver) resolve(node *yaml.Node) error {
	return r.walk(node, r.baseDir, 0)
}

func (r *includeResolver) walk(node *yaml.Node, dir string, depth int) error {
	if node == nil {
		return nil
	}
	if depth > maxIncludeDepth {
		return fmt.Errorf("%s nesting exceeds %d levels", includeTag, maxIncludeDepth)
	}
	if node.Tag == includeTag {
		return r.include(node, dir, depth)
	}
	for _, child := range node.Content {
		if err := r.walk(child, dir, depth); err != nil {
			return err
		}
	}
	return nil
}

func (r *includeResolver) include(node *yaml.Node, dir string, depth int) error {
	ref := strings.TrimSpace(node.Value)
	if ref == "" {
		return fmt.Errorf("%s needs a file name", includeTag)
	}
	if filepath.IsAbs(ref) {
		return fmt.Errorf("%s %q: absolute paths are not allowed", includeTag, ref)
	}

	target := filepath.Join(dir, ref)
	if !r.within(target) {
		return fmt.Errorf("%s %q: path escapes the profile directory", includeTag, ref)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return fmt.Errorf("%s %q: %w", includeTag, ref, err)
	}

	switch strings.ToLower(filepath.Ext(target)) {
	case ".yaml", ".yml":
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("%s %q: %w", includeTag, ref, err)
		}
		if err := r.walk(&doc, filepath.Dir(target), depth+1); err != nil {
			return err
		}
		if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
			*node = *doc.Content[0]
		} else {
			*node = yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
		}
	case ".list":
		*node = yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: line})
		}
	default:
		*node = yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: strings.TrimRight(string(data), "\r\n")}
	}
	return nil
}

// within reports whether path stays inside the base directory after symlinks.
func (r *includeResolver) within(path string) bool {
	base, err := filepath.EvalSymlinks(r.baseDir)
	if err != nil {
		base = r.baseDir
	}
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		resolved = path
	}
	rel, err := filepath.Rel(base, resolved)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
