package commit

import "strings"

// BucketBreaking and BucketUnrecognized are the two bucket names that don't
// correspond to a commit type. Every other bucket is named after its type.
const (
	BucketBreaking     = "breaking"
	BucketUnrecognized = TypeUnrecognized
)

// Bucket is one named, ordered changelog section.
type Bucket struct {
	Name    string
	Commits []*ClassifiedCommit
}

// Groups is a complete partition of classified commits into buckets. Every
// bucket in the fixed order is present, empty or not, so callers never
// special-case absence. Relative commit order within a bucket matches the
// input order.
//
// A breaking commit lands in the breaking bucket and additionally in its
// base-type bucket. This duplication is deliberate: the breaking section
// is a summary, not a replacement for the type sections.
type Groups struct {
	buckets []Bucket
	index   map[string]int
}

// Grouper partitions classified commits. Its bucket order is: breaking,
// feat, fix, the remaining recognized types, extra configured types, then
// unrecognized.
type Grouper struct {
	order []string
}

func NewGrouper(extraTypes []string) *Grouper {
	order := make([]string, 0, len(defaultTypes)+len(extraTypes)+2)
	order = append(order, BucketBreaking)
	order = append(order, defaultTypes...)
	for _, t := range extraTypes {
		t = strings.ToLower(t)
		if !contains(order, t) {
			order = append(order, t)
		}
	}
	order = append(order, BucketUnrecognized)
	return &Grouper{order: order}
}

func (g *Grouper) Group(commits []*ClassifiedCommit) *Groups {
	res := &Groups{
		buckets: make([]Bucket, len(g.order)),
		index:   make(map[string]int, len(g.order)),
	}
	for i, name := range g.order {
		res.buckets[i] = Bucket{Name: name}
		res.index[name] = i
	}

	for _, c := range commits {
		if c.Breaking {
			res.add(BucketBreaking, c)
		}
		if i, ok := res.index[c.Type]; ok {
			res.buckets[i].Commits = append(res.buckets[i].Commits, c)
		} else {
			res.add(BucketUnrecognized, c)
		}
	}
	return res
}

func (g *Groups) add(bucket string, c *ClassifiedCommit) {
	i := g.index[bucket]
	g.buckets[i].Commits = append(g.buckets[i].Commits, c)
}

// Buckets returns all buckets in the fixed order, including empty ones.
func (g *Groups) Buckets() []Bucket {
	return g.buckets
}

// Get returns the named bucket's commits, nil for unknown names.
func (g *Groups) Get(name string) []*ClassifiedCommit {
	i, ok := g.index[name]
	if !ok {
		return nil
	}
	return g.buckets[i].Commits
}

func contains(l []string, s string) bool {
	for _, cand := range l {
		if s == cand {
			return true
		}
	}
	return false
}
