package models

import (
	"strconv"

	"github.com/yourusername/gridwm/internal/types"
)

// overflowValue stands in for numbers GridServer could not encode, which
// it sends as booleans.
const overflowValue = 9999999.0

// ToFloat64 converts a decoded JSON value to float64.
func ToFloat64(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	case uint32:
		return float64(n)
	case bool:
		return overflowValue
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	default:
		return 0
	}
}

// ToInt converts a decoded JSON value to int64. Booleans are 0.
func ToInt(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int:
		return int64(n)
	case int64:
		return n
	case int32:
		return int64(n)
	case uint32:
		return int64(n)
	case string:
		i, _ := strconv.ParseInt(n, 10, 64)
		return i
	default:
		return 0
	}
}

// ToUint32 converts a decoded JSON window id.
func ToUint32(v interface{}) uint32 {
	i := ToInt(v)
	if i < 0 || i > int64(^uint32(0)) {
		return 0
	}
	return uint32(i)
}

func ToString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func ToBool(v interface{}) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return false
}

// ParseFrame handles both object format {x,y,width,height} and array format [[x,y],[w,h]]
func ParseFrame(frame interface{}) (types.Rect, bool) {
	if frame == nil {
		return types.Rect{}, false
	}

	if obj, ok := frame.(map[string]interface{}); ok {
		return types.Rect{
			X:      ToFloat64(obj["x"]),
			Y:      ToFloat64(obj["y"]),
			Width:  ToFloat64(obj["width"]),
			Height: ToFloat64(obj["height"]),
		}, true
	}

	if arr, ok := frame.([]interface{}); ok && len(arr) == 2 {
		origin, okOrigin := arr[0].([]interface{})
		size, okSize := arr[1].([]interface{})

		if okOrigin && okSize && len(origin) >= 2 && len(size) >= 2 {
			return types.Rect{
				X:      ToFloat64(origin[0]),
				Y:      ToFloat64(origin[1]),
				Width:  ToFloat64(size[0]),
				Height: ToFloat64(size[1]),
			}, true
		}
	}

	return types.Rect{}, false
}

// FrameParams renders a rect in GridServer's object form.
func FrameParams(r types.Rect) map[string]interface{} {
	return map[string]interface{}{
		"x":      r.X,
		"y":      r.Y,
		"width":  r.Width,
		"height": r.Height,
	}
}
