// Package cache memoizes GPU objects by resource key.
//
// ResourceCache builds each object at most once per key:
//
//	c := cache.New[hal.Texture]()
//	tex, err := c.GetOrBuild(key, func() (hal.Texture, error) {
//		return device.CreateTexture(desc)
//	})
//
// The cache never evicts on its own. It keeps entries in least recently
// used order so that an external policy can pick victims with Oldest and
// drop them with Remove.
//
// # Thread Safety
//
// ResourceCache is not safe for concurrent use. It is owned by a single
// resource provider; callers that share one must serialize access.
package cache
