// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package profile caches parsed profile files and serves reads and writes
// against them.
//
// A Cache holds a fixed number of slots ordered most-recently-used first. A
// request for a profile that is not resident loads it into the head slot,
// evicting the tail when every slot is taken. Mutations set a dirty flag; a
// dirty profile is written back when it is evicted, released, flushed
// explicitly or when the Cache is closed. Flush failures are logged and leave
// the profile dirty.
//
// One mutex guards the whole Cache, file I/O included. Every result handed to
// a caller is a copy; no section or entry escapes the lock.
//
// Two call surfaces are provided. The Get/Set/Delete methods are the Go
// form. The Read/Write methods in buffer.go keep the classic buffer contract:
// NUL-terminated output truncated to the caller's buffer, nil arguments as
// delete and release sentinels, and failures folded into a bool or length.
package profile
