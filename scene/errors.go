package scene

import "errors"

// ErrDegenerateTransform is returned by SceneObject.SetTransform when the
// transform's linear part is singular (determinant near zero), since a
// world-space ray cannot then be mapped back into model space.
var ErrDegenerateTransform = errors.New("scene: transform is not invertible")
