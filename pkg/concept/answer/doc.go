// Package answer decodes the answers returned by queries: concept maps,
// aggregate numbers and their grouped forms.
package answer
