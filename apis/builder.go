/*
   Copyright 2026 The Keyward Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

// Builder composes Registry and Activator instances from a Config.
// Implementations may migrate state from previous instances (prev*), or
// ignore them.
type Builder interface {
	// BuildRegistry constructs a Registry for cfg. May migrate entries from
	// the previous registry. ext is an optional extension context; its
	// meaning is implementation-defined.
	BuildRegistry(cfg Config, prev Registry, ext any) Registry

	// BuildActivator constructs the activation pipeline over reg. ctx is
	// the explicit construction context threaded to factories. May reuse
	// state from the previous activator. ext as above.
	BuildActivator(cfg Config, reg Registry, prev Activator, ctx *Context, ext any) Activator
}
