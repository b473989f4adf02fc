package config

// merge overlays set fields of overlay onto base. Slice options replace
// wholesale rather than appending so a project file can shrink the key
// sets the global file defined.
func merge(base, overlay *Config) {
	if len(overlay.ConfirmKeys) > 0 {
		base.ConfirmKeys = overlay.ConfirmKeys
	}
	if len(overlay.QuitKeys) > 0 {
		base.QuitKeys = overlay.QuitKeys
	}
	if overlay.GroupIcon != "" {
		base.GroupIcon = overlay.GroupIcon
	}
	if overlay.UISelectFallback != nil {
		base.UISelectFallback = overlay.UISelectFallback
	}
	if overlay.Border != "" {
		base.Border = overlay.Border
	}
	for name, block := range overlay.Extensions {
		if base.Extensions == nil {
			base.Extensions = make(map[string]interface{})
		}
		base.Extensions[name] = block
	}
}
