package blogservice

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abrabant/brabantapi/internal/common"
)

// The ingestion pipeline turns a front-matter-annotated markdown document
// into a persisted blogpost. It is a linear sequence:
//
//	parse -> validate metadata -> resolve author -> duplicate-title guard -> persist
//
// Every recoverable problem is reported through the returned FieldError
// list; an empty list means the post was created. Only storage failures
// come back as a Go error.

const frontMatterFence = "---"

var errMalformedFrontMatter = errors.New("malformed front matter")

// parseFrontMatter splits a document into its metadata block and body. A
// document without an opening fence has no metadata at all; an opening
// fence without a closing one, or an unparseable YAML block, is a hard
// parse failure.
func parseFrontMatter(doc string) (map[string]any, string, error) {
	doc = strings.ReplaceAll(doc, "\r\n", "\n")

	if doc != frontMatterFence && !strings.HasPrefix(doc, frontMatterFence+"\n") {
		return map[string]any{}, doc, nil
	}

	rest := strings.TrimPrefix(doc, frontMatterFence)
	rest = strings.TrimPrefix(rest, "\n")

	var block, body string
	switch idx := strings.Index(rest, "\n"+frontMatterFence); {
	case strings.HasPrefix(rest, frontMatterFence):
		// empty metadata block
		block, body = "", strings.TrimPrefix(rest, frontMatterFence)
	case idx >= 0:
		block = rest[:idx]
		body = rest[idx+len("\n"+frontMatterFence):]
	default:
		return nil, "", errMalformedFrontMatter
	}

	body = strings.TrimPrefix(strings.TrimPrefix(body, "\n"), "\n")

	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		return nil, "", errMalformedFrontMatter
	}
	if meta == nil {
		meta = map[string]any{}
	}

	return meta, body, nil
}

// metaString returns the value for key when it is present and a string.
// The second return distinguishes "absent" from "present but wrong type";
// the third is false only for the wrong-type case.
func metaString(meta map[string]any, key string) (string, bool, bool) {
	raw, ok := meta[key]
	if !ok {
		return "", false, true
	}
	s, ok := raw.(string)
	return s, true, ok
}

func metaDate(raw any) (time.Time, bool) {
	switch value := raw.(type) {
	case time.Time:
		return value, true
	case string:
		for _, layout := range []string{"2006-01-02", time.RFC3339} {
			if ts, err := time.Parse(layout, value); err == nil {
				return ts, true
			}
		}
	}
	return time.Time{}, false
}

// metaAuthorID accepts either a YAML integer or a numeric string.
func metaAuthorID(raw any) (int, bool) {
	switch value := raw.(type) {
	case int:
		return value, true
	case string:
		id, err := strconv.Atoi(value)
		return id, err == nil
	}
	return 0, false
}

func metaTags(meta map[string]any) []string {
	raw, ok := meta["tags"].([]any)
	if !ok {
		return nil
	}

	tags := make([]string, 0, len(raw))
	for _, item := range raw {
		if tag, ok := item.(string); ok {
			tags = append(tags, tag)
		}
	}
	return tags
}

// validateMarkdownMeta checks every field constraint and accumulates all
// violations so the caller sees the complete report in one pass.
func validateMarkdownMeta(meta map[string]any) []FieldError {
	var errs []FieldError

	pushMissing := func(field string) {
		errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf("expected to find %s field in markdown metadata, but was not there", field)})
	}
	pushInvalid := func(field string) {
		errs = append(errs, FieldError{Field: field, Message: "provided value is invalid"})
	}

	checkLength := func(field string, min, max int) {
		value, present, isString := metaString(meta, field)
		switch {
		case !present:
			pushMissing(field)
		case !isString || len(value) < min || len(value) > max:
			pushInvalid(field)
		}
	}

	checkLength("title", 10, 100)
	checkLength("description", 30, 300)
	checkLength("coverImagePath", 1, 300)

	if raw, ok := meta["authorId"]; ok {
		if _, valid := metaAuthorID(raw); !valid {
			pushInvalid("authorId")
		}
	}

	if raw, ok := meta["authorEmail"]; ok {
		email, isString := raw.(string)
		if !isString || !EmailRX.MatchString(email) {
			pushInvalid("authorEmail")
		}
	}

	for _, field := range []string{"releaseTs", "lastEditTs"} {
		if raw, ok := meta[field]; ok {
			if _, valid := metaDate(raw); !valid {
				pushInvalid(field)
			}
		}
	}

	return errs
}

// resolveAuthor finds the user a post should be attached to, trying
// authorId first and falling back to authorEmail. A zero id means no user
// matched; the error return is reserved for storage failures.
func (s *BlogpostService) resolveAuthor(ctx context.Context, meta map[string]any) (int, error) {
	if raw, ok := meta["authorId"]; ok {
		if id, valid := metaAuthorID(raw); valid {
			userID, err := s.m.userIDByID(ctx, id)
			switch {
			case err == nil:
				return userID, nil
			case !errors.Is(err, ErrRecordNotFound):
				return 0, err
			}
		}
	}

	if raw, ok := meta["authorEmail"]; ok {
		if email, isString := raw.(string); isString {
			userID, err := s.m.userIDByEmail(ctx, email)
			switch {
			case err == nil:
				return userID, nil
			case !errors.Is(err, ErrRecordNotFound):
				return 0, err
			}
		}
	}

	return 0, nil
}

// CreateFromMarkdown ingests a front-matter-annotated markdown document.
// The returned list carries every validation problem found; it is empty on
// success. No row is written unless the whole pipeline passes.
func (s *BlogpostService) CreateFromMarkdown(ctx context.Context, doc string) ([]FieldError, error) {
	meta, body, err := parseFrontMatter(doc)
	if err != nil {
		return []FieldError{{Message: "could not parse markdown metadata"}}, nil
	}

	if errs := validateMarkdownMeta(meta); len(errs) > 0 {
		return errs, nil
	}

	authorID, err := s.resolveAuthor(ctx, meta)
	if err != nil {
		return nil, err
	}
	if authorID == 0 {
		return []FieldError{{
			Field:   "authorId",
			Message: "could not attach the post to an existing user: either authorId or authorEmail are not present, or they do not refer to a valid user",
		}}, nil
	}

	title, _, _ := metaString(meta, "title")
	description, _, _ := metaString(meta, "description")
	coverImagePath, _, _ := metaString(meta, "coverImagePath")

	duplicate, err := s.m.hasAuthorPostWithTitle(ctx, authorID, title)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return []FieldError{{
			Field:   "title",
			Message: fmt.Sprintf("this user already has a blogpost entitled %q", title),
		}}, nil
	}

	b := Blogpost{
		StringID:       common.Slugify(title),
		Title:          title,
		Description:    description,
		Content:        sanitizeMarkdown(body),
		AuthorID:       authorID,
		CoverImagePath: coverImagePath,
	}
	if raw, ok := meta["releaseTs"]; ok {
		b.ReleaseTs, _ = metaDate(raw)
	}
	if raw, ok := meta["lastEditTs"]; ok {
		b.LastEditTs, _ = metaDate(raw)
	}

	if _, err := s.persist(ctx, &b, metaTags(meta)); err != nil {
		return nil, err
	}

	return nil, nil
}
