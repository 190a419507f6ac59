package opengl

// Option configures a Device.
type Option func(*options)

type options struct {
	hardwareMipmaps bool
	legacyAuto      bool
}

func defaultOptions() options {
	return options{hardwareMipmaps: true, legacyAuto: true}
}

// WithHardwareMipmaps controls whether the device reports glGenerateMipmap
// as available. Disabling it forces the legacy or software mipmap path.
func WithHardwareMipmaps(enabled bool) Option {
	return func(o *options) {
		o.hardwareMipmaps = enabled
	}
}

// WithLegacyAutoMipmap controls whether GL_GENERATE_MIPMAP requests are
// honoured.
func WithLegacyAutoMipmap(enabled bool) Option {
	return func(o *options) {
		o.legacyAuto = enabled
	}
}
