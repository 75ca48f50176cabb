package config

const (
	defaultMediaDir          = "~/media"
	defaultStateDir          = "~/.local/share/webmify"
	defaultLogDir            = "~/.local/share/webmify/logs"
	defaultEncoderBinary     = "ffmpeg"
	defaultProbeBinary       = "ffprobe"
	defaultVideoCodec        = "libvpx-vp9"
	defaultAudioCodec        = "libopus"
	defaultExtension         = "webm"
	defaultEncodeTimeout     = 3600
	defaultWatchPollInterval = 10
	defaultScanWorkers       = 4
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			MediaDir: defaultMediaDir,
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Encoder: Encoder{
			Binary:         defaultEncoderBinary,
			ProbeBinary:    defaultProbeBinary,
			VideoCodec:     defaultVideoCodec,
			AudioCodec:     defaultAudioCodec,
			Extension:      defaultExtension,
			TimeoutSeconds: defaultEncodeTimeout,
		},
		Conversion: Conversion{
			Enabled:      true,
			KeepOriginal: false,
		},
		Workflow: Workflow{
			WatchPollInterval: defaultWatchPollInterval,
			ScanWorkers:       defaultScanWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
