// Package models contains the core data structures for LiveGuide.
package models
