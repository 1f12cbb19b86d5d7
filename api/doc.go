// Package api defines the contracts the reactor runtime consumes from its
// host application: receivers, notifiers, events, and the thread-local event
// queue. Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package api
