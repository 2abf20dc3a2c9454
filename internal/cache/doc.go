// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

// Package cache provides a persistent memoizing cache. Results of expensive
// calls are kept in a bbolt file under the cache directory and reused until
// their TTL runs out.
package cache
