package config

// Default returns the built-in knowledge base. The content mirrors the
// IPC designator conventions and guitar-pedal sourcing heuristics the
// engine ships with; a YAML overlay can replace any section.
func Default() *Tables {
	return &Tables{
		SIPrefixes: map[string]int32{
			"p": -12,
			"n": -9,
			"u": -6,
			"µ": -6,
			"m": -3,
			"k": 3,
			"K": 3,
			"M": 6,
			"G": 9,
		},

		Prefixes: []PrefixRule{
			{Prefix: "PCB", Category: "PCB"},
			{Prefix: "LDR", Category: "Optoelectronics", RequireDigit: true},
			{Prefix: "LED", Category: "Diodes", RequireDigit: true},
			{Prefix: "POT", Category: "Potentiometers"},
			{Prefix: "TRIM", Category: "Potentiometers"},
			{Prefix: "VR", Category: "Potentiometers", RequireDigit: true},
			{Prefix: "SW", Category: "Switches"},
			{Prefix: "IC", Category: "ICs", RequireDigit: true},
			{Prefix: "U", Category: "ICs", RequireDigit: true},
			{Prefix: "OP", Category: "ICs", RequireDigit: true},
			{Prefix: "TL", Category: "ICs", RequireDigit: true},
			{Prefix: "CLR", Category: "Resistors"},
			{Prefix: "R", Category: "Resistors", RequireDigit: true},
			{Prefix: "C", Category: "Capacitors", RequireDigit: true},
			{Prefix: "D", Category: "Diodes", RequireDigit: true},
			{Prefix: "Q", Category: "Transistors", RequireDigit: true},
			{Prefix: "X", Category: "Crystals/Oscillators", RequireDigit: true},
			{Prefix: "Y", Category: "Crystals/Oscillators", RequireDigit: true},
			{Prefix: "J", Category: "Hardware/Misc", RequireDigit: true},
		},

		PotTapers: map[string]string{
			"A": "Logarithmic",
			"B": "Linear",
			"C": "Reverse Log",
			"W": "W Taper",
			"G": "Graphic",
		},

		PotLabels: []string{
			"VOLUME", "VOL", "TONE", "GAIN", "DRIVE", "DIST", "FUZZ", "DIRT",
			"LEVEL", "MIX", "BLEND", "BALANCE", "DRY", "WET", "SPEED", "RATE",
			"DEPTH", "INTENSITY", "WIDTH", "DECAY", "ATTACK", "RELEASE",
			"SUSTAIN", "COMP", "THRESH", "TREBLE", "BASS", "MIDS", "PRESENCE",
			"CONTOUR", "EQ", "BODY", "BIAS", "BOOST", "MASTER", "PRE", "POST",
			"FILTER", "SENS", "SWEEP", "RES", "RESONANCE", "AMT", "AMOUNT",
			"DISTORTION", "OCTAVE", "AMPLITUDE", "CLEAN",
		},

		SwitchLabels: []string{
			"LENGTH", "MODE", "CLIP", "VOICE", "BRIGHT", "FAT", "PV", "RANGE",
			"LO", "HI", "MID",
		},

		IgnoreTokens: []string{
			"TP", "TPOINT", "TEST POINT", "PROBE", "FID", "FIDUCIAL",
			"MH", "MOUNTING HOLE", "MTG", "DRILL",
			"JP", "JUMPER", "SJ", "SOLDER JUMPER", "VIA", "PAD",
			"DNP", "DNI", "NO POP", "DO NOT POPULATE", "NOT MOUNTED",
			"OMIT", "UNUSED",
			"SILKSCREEN", "LOGO", "FACEPLATE",
			"GND", "AGND", "DGND", "VCC", "VDD", "VSS", "VEE", "VREF",
			"+9V", "-9V", "+5V", "+18V", "+3V3",
		},

		ResidualHeaderWords: []string{
			"RESISTORS", "CAPACITORS", "TRANSISTORS", "DIODES",
			"POTENTIOMETERS", "PCB", "COMPONENT LIST", "SOCKET",
		},

		Buffers: map[string]BufferRule{
			"Resistors":  {RoundTo: 10, Floor: 10, Note: "Bulk passive: rounded to nearest 10 (1/4W metal film)"},
			"Capacitors": {RoundTo: 10, Floor: 10, Note: "Bulk passive: rounded to nearest 10"},
			"Diodes":     {Add: 1, Note: "Discrete silicon: +1 soldering-loss spare"},
			"Transistors": {Add: 1, Note: "Discrete silicon: +1 soldering-loss spare"},
			"ICs":        {Add: 1, Note: "+1 backup unit"},
			"Optoelectronics": {Add: 1, Note: "+1 fragile legs"},
			"Crystals/Oscillators": {Add: 1, Note: "+1 heat sensitive / fragile"},
		},

		Injections: []InjectionRule{
			{
				MatchCategory:     "ICs",
				SkipValueContains: []string{"REGULATOR", "L78L", "MODULE", "BTDR", "REVERB"},
				InjectCategory:    "Hardware/Misc",
				InjectValue:       "8 PIN DIP SOCKET",
				PerMatchedUnit:    true,
				Note:              "Socket per DIP chip",
			},
			{
				MatchCategory:  "Transistors",
				MatchValueAny:  []string{"MMBF"},
				InjectCategory: "Hardware/Misc",
				InjectValue:    "SMD ADAPTER BOARD",
				PerMatchedUnit: true,
				Note:           "SOT-23 breakout for SMD-only part",
			},
		},

		StandardHardware: []HardwareItem{
			{Category: "Resistors", Value: "3.3k", QtyPerBuild: 1, Note: "LED CLR"},
			{Category: "Diodes", Value: "LED", QtyPerBuild: 1, Note: "Status light"},
			{Category: "Hardware/Misc", Value: "1590B Enclosure", QtyPerBuild: 1, Note: "Verify PCB fit"},
			{Category: "Hardware/Misc", Value: "3PDT FOOTSWITCH PCB", QtyPerBuild: 1, Note: "Wiring board"},
			{Category: "Hardware/Misc", Value: "3PDT STOMP SWITCH", QtyPerBuild: 1, Note: "Blue/standard"},
			{Category: "Hardware/Misc", Value: "6.35MM JACK (STEREO)", QtyPerBuild: 1, Note: "Input"},
			{Category: "Hardware/Misc", Value: "6.35MM JACK (MONO)", QtyPerBuild: 1, Note: "Output"},
			{Category: "Hardware/Misc", Value: "DC POWER JACK 2.1MM", QtyPerBuild: 1, Note: "Center negative"},
			{Category: "Hardware/Misc", Value: "Bezel LED Holder", QtyPerBuild: 1, Note: "3mm metal"},
			{Category: "Hardware/Misc", Value: "Rubber Feet (Black)", QtyPerBuild: 4, Note: "Enclosure feet"},
			{Category: "Hardware/Misc", Value: "AWG 24 Hook-Up Wire", QtyPerBuild: 3, Note: "Approx 1ft per build"},
			{Category: "Hardware/Misc", Value: "9V BATTERY CLIP", QtyPerBuild: 1, Note: "Optional"},
			{Category: "Hardware/Misc", Value: "Knob", PerPot: true, Note: "One per potentiometer"},
			{Category: "Hardware/Misc", Value: "Dust Seal Cover", PerPot: true, Note: "One per potentiometer"},
		},

		ICSubs: map[string][]Substitute{
			"TL072": {
				{Name: "OPA2134", Profile: "Hi-Fi / Studio Clean", Reason: "Low distortion, high slew rate (20V/us)"},
				{Name: "TLC2272", Profile: "High Headroom Clean", Reason: "Rail-to-rail output on 9V"},
			},
			"JRC4558": {
				{Name: "NJM4558D", Profile: "Vintage Correct", Reason: "Authentic BJT bandwidth limiting"},
				{Name: "OPA2134", Profile: "Modern/Clinical", Reason: "High impedance input"},
			},
			"LM308": {
				{Name: "LM308N", Profile: "Vintage RAT", Reason: "Required for slew-induced distortion"},
				{Name: "OP07", Profile: "Modern Tight", Reason: "Faster slew rate, tighter response"},
			},
			"NE5532": {
				{Name: "OPA2134", Profile: "Lower Noise", Reason: "JFET input reduces current noise"},
			},
		},

		DiodeSubs: map[string][]Substitute{
			"1N4148": {
				{Name: "1N4001", Profile: "Smooth / Tube-like", Reason: "Slow reverse recovery smears highs"},
				{Name: "Red LED", Profile: "Amp-like / Open", Reason: "1.8V drop: huge headroom"},
			},
			"1N914": {
				{Name: "1N4001", Profile: "Smooth / Tube-like", Reason: "Slow reverse recovery smears highs"},
			},
			"1N34A": {
				{Name: "BAT41", Profile: "Modern Schottky", Reason: "Stable alternative, harder knee"},
				{Name: "1N60", Profile: "Alt Germanium", Reason: "Different Vf variance"},
			},
		},

		ObsoletePartWarnings: map[string]string{
			"2N5457": "Obsolete part: check specialty vendors or consider MMBF5457",
			"MMBF":   "SMD part: verify PCB pads or buy adapter",
		},

		RangeExpansionLimit: 50,

		SupplierSearchURL: "https://www.taydaelectronics.com/catalogsearch/result/?q=%s",
		BoardSearchURL:    "https://www.pedalpcb.com/?product_cat=&s=%s&post_type=product",
	}
}
