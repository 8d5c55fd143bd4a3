// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC sample files through github.com/mewkiz/flac.
package flac
