// Package m3u merges M3U playlists fetched over HTTP. It downloads each
// source, extracts #EXTINF entries paired with http(s) stream URLs,
// deduplicates them across sources, and writes one sorted playlist.
//
// Sources are processed one at a time in the order given. A source that
// fails to download contributes nothing and does not stop the run.
package m3u
