// Package titlematch canonicalizes media titles and matches them across
// catalogs that disagree on punctuation, articles, joiner words, and
// release-year suffixes.
//
// Normalize produces the comparison key used everywhere in this repo; the
// result is never displayed. FindBestMatch scans candidates in input order and
// accepts the first one that matches exactly after normalization (with
// optional year disambiguation) or scores at or above the fuzzy threshold.
package titlematch
