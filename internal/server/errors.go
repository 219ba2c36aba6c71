// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoServersAreCreated is returned by NewServer when the notification
// listener has no address configured.
var errNoServersAreCreated = errors.New("no servers are created: notification listener address is empty")
