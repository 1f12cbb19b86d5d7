// Package control provides the reactor's observability surface: live
// metrics counters and named debug probes, adapted from the teacher's
// control package (hot-reload, metrics, debug introspection layer) down to
// the concerns a single-process event loop actually needs.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package control
