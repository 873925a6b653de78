// Package models defines the exam API payloads used by the examiner client.
package models
