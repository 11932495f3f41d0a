package transform

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"

	"github.com/otimme/attractor-engine/graph"
)

const frontMatterDelim = "---"

// InlinePromptFiles resolves every node prompt attribute that begins with
// "@" into the literal contents of the referenced file, relative to the
// graph's "_prompt_base" attribute (or the process working directory if
// unset). A path containing glob metacharacters is resolved with
// doublestar, taking the first lexically sorted match; a literal path is
// read directly. Files may open with a "---"-delimited YAML front-matter
// block, which is parsed (to validate it and allow future metadata use) and
// stripped; the remaining markdown body is parsed with goldmark to confirm
// it is well-formed, and its raw text becomes the node's prompt. I/O or
// glob-match failures abort the whole transform, naming the offending node
// and path.
func InlinePromptFiles(g *graph.Graph) (*graph.Graph, error) {
	base := g.AttrStringOr("_prompt_base", ".")
	out := g.Clone()

	for id, node := range out.Nodes {
		prompt, ok := node.Attr("prompt")
		if !ok || prompt.Kind() != graph.KindString {
			continue
		}
		ref := prompt.ToString()
		if !strings.HasPrefix(ref, "@") {
			continue
		}
		path := strings.TrimPrefix(ref, "@")

		resolved, err := resolvePromptPath(base, path)
		if err != nil {
			return nil, fmt.Errorf("node %s: prompt file %q: %w", id, path, err)
		}

		raw, err := os.ReadFile(resolved)
		if err != nil {
			return nil, fmt.Errorf("node %s: prompt file %q: %w", id, resolved, err)
		}

		body, err := stripFrontMatter(raw)
		if err != nil {
			return nil, fmt.Errorf("node %s: prompt file %q: front matter: %w", id, resolved, err)
		}

		var rendered bytes.Buffer
		if err := goldmark.New().Convert(body, &rendered); err != nil {
			return nil, fmt.Errorf("node %s: prompt file %q: markdown: %w", id, resolved, err)
		}

		node.Attributes["prompt"] = graph.String(strings.TrimSpace(string(body)))
	}
	return out, nil
}

func resolvePromptPath(base, path string) (string, error) {
	full := path
	if !filepath.IsAbs(path) {
		full = filepath.Join(base, path)
	}
	if !strings.ContainsAny(path, "*?[") {
		return full, nil
	}

	matches, err := doublestar.FilepathGlob(full)
	if err != nil {
		return "", fmt.Errorf("glob: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no file matches glob")
	}
	sort.Strings(matches)
	return matches[0], nil
}

// stripFrontMatter removes a leading "---\n...\n---\n" YAML block if
// present and parses it to validate well-formedness, discarding the
// decoded value. A file with no front-matter delimiter is returned
// unchanged.
func stripFrontMatter(raw []byte) ([]byte, error) {
	text := string(raw)
	if !strings.HasPrefix(text, frontMatterDelim) {
		return raw, nil
	}

	rest := text[len(frontMatterDelim):]
	rest = strings.TrimPrefix(rest, "\n")
	end := strings.Index(rest, "\n"+frontMatterDelim)
	if end == -1 {
		return raw, nil
	}

	block := rest[:end]
	var meta map[string]any
	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		return nil, err
	}

	remainder := rest[end+len("\n"+frontMatterDelim):]
	remainder = strings.TrimPrefix(remainder, "\n")
	return []byte(remainder), nil
}
