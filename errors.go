package epubfind

import "errors"

// Sentinel errors returned by the epubfind package.
var (
	// ErrInvalidArchive indicates the file is not a readable ZIP container.
	ErrInvalidArchive = errors.New("epubfind: not a readable zip archive")

	// ErrInvalidEPub indicates the container structure is unusable
	// (e.g., missing container.xml and no .opf file found).
	ErrInvalidEPub = errors.New("epubfind: invalid ePub file")

	// ErrNoSpine indicates the ePub has no discoverable reading order:
	// the OPF spine is missing or references no content documents.
	ErrNoSpine = errors.New("epubfind: no reading order in ePub")

	// ErrFileNotFound indicates a requested file does not exist
	// in the ePub archive.
	ErrFileNotFound = errors.New("epubfind: file not found in archive")

	// ErrInvalidPattern indicates a search phrase could not be compiled.
	// Compilation failures abort the whole invocation; the query must mean
	// the same thing for every book it is applied to.
	ErrInvalidPattern = errors.New("epubfind: invalid search phrase")

	// ErrDRMProtected indicates the ePub is protected by DRM
	// (e.g., Adobe ADEPT, Apple FairPlay, Readium LCP) and its text
	// cannot be searched.
	ErrDRMProtected = errors.New("epubfind: file is DRM protected")
)
