// Package content serves the blog and services catalog, which ship with the
// binary as YAML files.
package content

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed blog.yaml
var blogYAML []byte

//go:embed services.yaml
var servicesYAML []byte

// Post is a blog post summary.
type Post struct {
	Slug     string `yaml:"slug" json:"slug"`
	Title    string `yaml:"title" json:"title"`
	Excerpt  string `yaml:"excerpt" json:"excerpt"`
	Date     string `yaml:"date" json:"date"`
	ReadTime string `yaml:"read_time" json:"read_time"`
	Category string `yaml:"category" json:"category"`
	Image    string `yaml:"image,omitempty" json:"image,omitempty"`
}

// Service is one offering in the services catalog.
type Service struct {
	Slug        string   `yaml:"slug" json:"slug"`
	Icon        string   `yaml:"icon" json:"icon"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Features    []string `yaml:"features" json:"features"`
	Price       string   `yaml:"price" json:"price"`
}

// Catalog is the parsed, read-only content.
type Catalog struct {
	posts    []Post
	services []Service
}

// Load parses the embedded content files.
func Load() (*Catalog, error) {
	return Parse(blogYAML, servicesYAML)
}

// Parse builds a Catalog from raw YAML. Posts are sorted newest first.
func Parse(blog, services []byte) (*Catalog, error) {
	var b struct {
		Posts []Post `yaml:"posts"`
	}
	if err := yaml.Unmarshal(blog, &b); err != nil {
		return nil, fmt.Errorf("parse blog: %w", err)
	}
	var s struct {
		Services []Service `yaml:"services"`
	}
	if err := yaml.Unmarshal(services, &s); err != nil {
		return nil, fmt.Errorf("parse services: %w", err)
	}

	seen := make(map[string]bool, len(b.Posts))
	for _, p := range b.Posts {
		if p.Slug == "" || seen[p.Slug] {
			return nil, fmt.Errorf("parse blog: missing or duplicate slug %q", p.Slug)
		}
		seen[p.Slug] = true
	}
	sort.SliceStable(b.Posts, func(i, j int) bool { return b.Posts[i].Date > b.Posts[j].Date })

	return &Catalog{posts: b.Posts, services: s.Services}, nil
}

// Posts returns the blog posts, optionally filtered by category
// (case-insensitive). An empty category or "All" returns every post.
func (c *Catalog) Posts(category string) []Post {
	if category == "" || strings.EqualFold(category, "all") {
		return append([]Post(nil), c.posts...)
	}
	out := []Post{}
	for _, p := range c.posts {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct post categories in first-seen order.
func (c *Catalog) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range c.posts {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// Services returns the services catalog.
func (c *Catalog) Services() []Service {
	return append([]Service(nil), c.services...)
}

// Post looks a blog post up by slug.
func (c *Catalog) Post(slug string) (Post, bool) {
	for _, p := range c.posts {
		if p.Slug == slug {
			return p, true
		}
	}
	return Post{}, false
}
