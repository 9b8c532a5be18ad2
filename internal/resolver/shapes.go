package resolver

import "reelgrab/internal/media"

// shape is one historically observed object-graph layout for post data.
// A layout without a video URL is a non-match even if other fields are
// present; the next shape is then tried.
type shape struct {
	name    string
	extract func(doc map[string]any) *media.Media
}

var shapes = []shape{
	{"graphql-shortcode-media", fromGraphQLRoot},
	{"xdt-shortcode-media", fromXDT},
	{"shared-data-entry", fromSharedData},
	{"feed-items", fromFeedItems},
	{"media-cache", fromMediaCache},
	{"camel-flat", fromCamelFlat},
}

// resolveShapes tries each known layout in priority order and returns the
// first full match plus the name of the shape that produced it.
func resolveShapes(doc map[string]any) (*media.Media, string) {
	for _, s := range shapes {
		if m := s.extract(doc); m != nil && m.URL != "" {
			return m, s.name
		}
	}
	return nil, ""
}

// fromGraphQLRoot reads the classic web-API response:
// {"graphql": {"shortcode_media": {...}}} or the media node at the root.
func fromGraphQLRoot(doc map[string]any) *media.Media {
	node := digMap(doc, "graphql", "shortcode_media")
	if node == nil {
		node = digMap(doc, "shortcode_media")
	}
	return fromSnakeNode(node)
}

// fromXDT reads the current GraphQL response: {"data": {"xdt_shortcode_media": {...}}}.
func fromXDT(doc map[string]any) *media.Media {
	return fromSnakeNode(digMap(doc, "data", "xdt_shortcode_media"))
}

// fromSharedData reads the page bootstrap graph:
// {"entry_data": {"PostPage": [{"graphql": {"shortcode_media": {...}}}]}}.
func fromSharedData(doc map[string]any) *media.Media {
	pages, ok := digMap(doc, "entry_data")["PostPage"].([]any)
	if !ok || len(pages) == 0 {
		return nil
	}
	page, ok := pages[0].(map[string]any)
	if !ok {
		return nil
	}
	return fromSnakeNode(digMap(page, "graphql", "shortcode_media"))
}

// fromFeedItems reads the mobile feed response: {"items": [{...}]} with
// video_versions and flat counters.
func fromFeedItems(doc map[string]any) *media.Media {
	items, ok := doc["items"].([]any)
	if !ok || len(items) == 0 {
		return nil
	}
	item, ok := items[0].(map[string]any)
	if !ok {
		return nil
	}

	versions, ok := item["video_versions"].([]any)
	if !ok || len(versions) == 0 {
		return nil
	}
	first, ok := versions[0].(map[string]any)
	if !ok {
		return nil
	}
	u := str(first["url"])
	if u == "" {
		return nil
	}

	m := &media.Media{URL: Unescape(u)}

	if candidates, ok := digMap(item, "image_versions2")["candidates"].([]any); ok && len(candidates) > 0 {
		if c, ok := candidates[0].(map[string]any); ok {
			m.ThumbnailURL = Unescape(str(c["url"]))
		}
	}

	m.Owner = digStr(item, "user", "username")
	m.Likes = i64(item["like_count"])
	m.Comments = i64(item["comment_count"])
	m.Views = i64(item["view_count"])
	if m.Views == 0 {
		m.Views = i64(item["play_count"])
	}
	m.Caption = digStr(item, "caption", "text")
	return m
}

// fromMediaCache reads the normalized per-entity layout: a "media" map keyed
// by post ID whose values carry the usual snake_case fields.
func fromMediaCache(doc map[string]any) *media.Media {
	cache, ok := doc["media"].(map[string]any)
	if !ok {
		return nil
	}
	for _, v := range cache {
		node, ok := v.(map[string]any)
		if !ok {
			continue
		}
		if m := fromSnakeNode(node); m != nil {
			return m
		}
	}
	return nil
}

// fromCamelFlat reads the flattened camelCase variant some embeds emit.
func fromCamelFlat(doc map[string]any) *media.Media {
	u := str(doc["videoUrl"])
	if u == "" {
		return nil
	}

	m := &media.Media{URL: Unescape(u)}
	m.ThumbnailURL = Unescape(str(doc["thumbnailUrl"]))
	m.Owner = str(doc["ownerUsername"])
	if m.Owner == "" {
		m.Owner = digStr(doc, "owner", "username")
	}
	m.Likes = i64(doc["likeCount"])
	m.Comments = i64(doc["commentCount"])
	m.Views = i64(doc["viewCount"])
	m.Caption = str(doc["caption"])
	return m
}

// fromSnakeNode reads a snake_case GraphQL media node, shared by several
// layouts. Returns nil when the node has no video URL.
func fromSnakeNode(node map[string]any) *media.Media {
	if node == nil {
		return nil
	}
	u := str(node["video_url"])
	if u == "" {
		return nil
	}

	m := &media.Media{URL: Unescape(u)}

	m.ThumbnailURL = Unescape(str(node["display_url"]))
	if m.ThumbnailURL == "" {
		m.ThumbnailURL = Unescape(str(node["thumbnail_src"]))
	}

	m.Owner = digStr(node, "owner", "username")

	m.Likes = edgeCount(node, "edge_media_preview_like")
	if m.Likes == 0 {
		m.Likes = edgeCount(node, "edge_liked_by")
	}
	m.Comments = edgeCount(node, "edge_media_to_comment")
	if m.Comments == 0 {
		m.Comments = edgeCount(node, "edge_media_to_parent_comment")
	}
	m.Views = i64(node["video_view_count"])

	m.Caption = captionEdge(node)
	return m
}

// captionEdge reads edge_media_to_caption.edges[0].node.text.
func captionEdge(node map[string]any) string {
	edges, ok := digMap(node, "edge_media_to_caption")["edges"].([]any)
	if !ok || len(edges) == 0 {
		return ""
	}
	edge, ok := edges[0].(map[string]any)
	if !ok {
		return ""
	}
	return digStr(edge, "node", "text")
}

// edgeCount reads the {"count": n} connection wrapper.
func edgeCount(node map[string]any, key string) int64 {
	return i64(digMap(node, key)["count"])
}

// digMap walks nested objects, returning nil (never panicking) on a miss.
// The result is safe to index even when nil.
func digMap(doc map[string]any, path ...string) map[string]any {
	cur := doc
	for _, key := range path {
		next, ok := cur[key].(map[string]any)
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// digStr walks nested objects to a string leaf.
func digStr(doc map[string]any, path ...string) string {
	if len(path) == 0 {
		return ""
	}
	parent := digMap(doc, path[:len(path)-1]...)
	if parent == nil {
		return ""
	}
	return str(parent[path[len(path)-1]])
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

// i64 reads a JSON number (or numeric string) as int64, defaulting to 0.
func i64(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case string:
		return parseCount(n)
	default:
		return 0
	}
}
