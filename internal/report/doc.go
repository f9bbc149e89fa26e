// Package report builds disk usage bar chart reports from provider listings.
package report
