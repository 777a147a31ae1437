// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis audio with github.com/jfreymuth/oggvorbis.
//
// The stream is decoded to float32 directly, with no integer round trip, in
// whatever channel layout the file carries.
package vorbis
