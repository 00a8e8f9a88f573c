package books

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hustwenchao/bookshelf/pkg/sanitizer"
)

// Book is a record in the books collection. At least one of CNName and
// ENName is set.
type Book struct {
	ID             bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	CNName         string        `bson:"cn_name,omitempty" json:"cn_name,omitempty"`
	ENName         string        `bson:"en_name,omitempty" json:"en_name,omitempty"`
	Author         string        `bson:"author,omitempty" json:"author,omitempty"`
	CNDoubanLink   string        `bson:"cn_douban_link,omitempty" json:"cn_douban_link,omitempty"`
	ENDoubanLink   string        `bson:"en_douban_link,omitempty" json:"en_douban_link,omitempty"`
	AuthorCNName   string        `bson:"author_cn_name,omitempty" json:"author_cn_name,omitempty"`
	AuthorWikiLink string        `bson:"author_wiki_link,omitempty" json:"author_wiki_link,omitempty"`
	CreatedAt      time.Time     `bson:"created_at" json:"created_at"`
}

// Fields are the editable attributes of a book.
type Fields struct {
	CNName         string `json:"cn_name"`
	ENName         string `json:"en_name"`
	Author         string `json:"author"`
	CNDoubanLink   string `json:"cn_douban_link"`
	ENDoubanLink   string `json:"en_douban_link"`
	AuthorCNName   string `json:"author_cn_name"`
	AuthorWikiLink string `json:"author_wiki_link"`
}

// Trim removes surrounding whitespace from every field.
func (f *Fields) Trim() {
	sanitizer.TrimAll(
		&f.CNName, &f.ENName, &f.Author,
		&f.CNDoubanLink, &f.ENDoubanLink,
		&f.AuthorCNName, &f.AuthorWikiLink,
	)
}

// NonEmpty returns the set fields keyed by their document name.
func (f Fields) NonEmpty() bson.M {
	m := bson.M{}
	for k, v := range map[string]string{
		"cn_name":          f.CNName,
		"en_name":          f.ENName,
		"author":           f.Author,
		"cn_douban_link":   f.CNDoubanLink,
		"en_douban_link":   f.ENDoubanLink,
		"author_cn_name":   f.AuthorCNName,
		"author_wiki_link": f.AuthorWikiLink,
	} {
		if v != "" {
			m[k] = v
		}
	}
	return m
}

func (f Fields) book(createdAt time.Time) *Book {
	return &Book{
		CNName:         f.CNName,
		ENName:         f.ENName,
		Author:         f.Author,
		CNDoubanLink:   f.CNDoubanLink,
		ENDoubanLink:   f.ENDoubanLink,
		AuthorCNName:   f.AuthorCNName,
		AuthorWikiLink: f.AuthorWikiLink,
		CreatedAt:      createdAt,
	}
}

// AddInput is the body of an add request.
type AddInput struct {
	Fields
	ForceAdd bool `json:"forceAdd"`
}

// UpdateInput is the body of an update request.
type UpdateInput struct {
	ID string `json:"_id"`
	Fields
}
