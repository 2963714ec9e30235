// Copyright 2026 The go-flow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vocab

// table returns the standard FCS keyword set, 1.0 through 3.1.
func table() []Attributes {
	return []Attributes{
		// segment layout
		{Keyword: "$BEGINANALYSIS", Description: "byte offset of the first byte of the ANALYSIS segment", Category: Layout, Kind: Integer, Versions: FCS3x, Flags: Standard | Required},
		{Keyword: "$ENDANALYSIS", Description: "byte offset of the last byte of the ANALYSIS segment", Category: Layout, Kind: Integer, Versions: FCS3x, Flags: Standard | Required},
		{Keyword: "$BEGINDATA", Description: "byte offset of the first byte of the DATA segment", Category: Layout, Kind: Integer, Versions: FCS3x, Flags: Standard | Required},
		{Keyword: "$ENDDATA", Description: "byte offset of the last byte of the DATA segment", Category: Layout, Kind: Integer, Versions: FCS3x, Flags: Standard | Required},
		{Keyword: "$BEGINSTEXT", Description: "byte offset of the first byte of the supplemental TEXT segment", Category: Layout, Kind: Integer, Versions: FCS3x, Flags: Standard | Required},
		{Keyword: "$ENDSTEXT", Description: "byte offset of the last byte of the supplemental TEXT segment", Category: Layout, Kind: Integer, Versions: FCS3x, Flags: Standard | Required},
		{Keyword: "$NEXTDATA", Description: "byte offset of the next dataset in the file", Category: Layout, Kind: Integer, Versions: AllVersions, Flags: Standard | Required},

		// dataset shape
		{Keyword: "$MODE", Description: "data mode (only list mode is in use)", Category: Dataset, Kind: String, Versions: AllVersions, Flags: Standard | Required},
		{Keyword: "$DATATYPE", Description: "type of the elements of the DATA segment", Category: Dataset, Kind: String, Versions: AllVersions, Flags: Standard | Required},
		{Keyword: "$BYTEORD", Description: "byte order of binary data elements", Category: Dataset, Kind: MultiValue, Versions: AllVersions, Flags: Standard | Required},
		{Keyword: "$PAR", Description: "number of parameters per event", Category: Dataset, Kind: Integer, Versions: AllVersions, Flags: Standard | Required},
		{Keyword: "$TOT", Description: "number of events in the dataset", Category: Dataset, Kind: Integer, Versions: AllVersions, Flags: Standard | Required},
		{Keyword: "$ABRT", Description: "events lost to electronic aborts", Category: Dataset, Kind: Integer, Versions: AllVersions, Flags: Standard},
		{Keyword: "$LOST", Description: "events lost to computer busy", Category: Dataset, Kind: Integer, Versions: AllVersions, Flags: Standard},
		{Keyword: "$TIMESTEP", Description: "time step of the time parameter, in seconds", Category: Dataset, Kind: Float, Versions: FCS3x, Flags: Standard},
		{Keyword: "$UNICODE", Description: "UTF-8 code page declarations", Category: Dataset, Kind: MultiValue, Versions: FCS30, Flags: Standard | Deprecated},
		{Keyword: "$ORIGINALITY", Description: "whether the dataset was modified after acquisition", Category: Dataset, Kind: String, Versions: FCS31, Flags: Standard},

		// acquisition bookkeeping
		{Keyword: "$DATE", Description: "acquisition date", Category: Acquisition, Kind: String, Versions: AllVersions, Flags: Standard | HasDate},
		{Keyword: "$BTIM", Description: "clock time at the beginning of acquisition", Category: Acquisition, Kind: String, Versions: AllVersions, Flags: Standard | HasDate},
		{Keyword: "$ETIM", Description: "clock time at the end of acquisition", Category: Acquisition, Kind: String, Versions: AllVersions, Flags: Standard | HasDate},
		{Keyword: "$OP", Description: "name of the instrument operator", Category: Acquisition, Kind: String, Versions: AllVersions, Flags: Standard | UserInfo},
		{Keyword: "$EXP", Description: "name of the investigator", Category: Acquisition, Kind: String, Versions: AllVersions, Flags: Standard | UserInfo},
		{Keyword: "$LAST_MODIFIED", Description: "time of the last dataset modification", Category: Acquisition, Kind: String, Versions: FCS31, Flags: Standard | HasDate},
		{Keyword: "$LAST_MODIFIER", Description: "name of the last dataset modifier", Category: Acquisition, Kind: String, Versions: FCS31, Flags: Standard | PersonalInfo | UserInfo},

		// instrument
		{Keyword: "$CYT", Description: "cytometer model", Category: Instrument, Kind: String, Versions: AllVersions, Flags: Standard},
		{Keyword: "$CYTSN", Description: "cytometer serial number", Category: Instrument, Kind: String, Versions: FCS3x, Flags: Standard},
		{Keyword: "$INST", Description: "institution where data was acquired", Category: Instrument, Kind: String, Versions: AllVersions, Flags: Standard},
		{Keyword: "$SYS", Description: "acquisition computer and operating system", Category: Instrument, Kind: String, Versions: AllVersions, Flags: Standard},
		{Keyword: "$FIL", Description: "name of the original data file", Category: Instrument, Kind: String, Versions: AllVersions, Flags: Standard | PersonalInfo},
		{Keyword: "$VOL", Description: "volume of sample consumed, in nanoliters", Category: Instrument, Kind: Float, Versions: FCS31, Flags: Standard},

		// specimen provenance
		{Keyword: "$SRC", Description: "source of the specimen", Category: Specimen, Kind: String, Versions: AllVersions, Flags: Standard | PersonalInfo},
		{Keyword: "$CELLS", Description: "type of cells measured", Category: Specimen, Kind: String, Versions: AllVersions, Flags: Standard | PersonalInfo},
		{Keyword: "$PROJ", Description: "name of the experiment project", Category: Specimen, Kind: String, Versions: AllVersions, Flags: Standard | PersonalInfo},
		{Keyword: "$SMNO", Description: "specimen or tube label", Category: Specimen, Kind: String, Versions: AllVersions, Flags: Standard | PersonalInfo},

		// free-form documentation
		{Keyword: "$COM", Description: "free-form comment", Category: Document, Kind: String, Versions: AllVersions, Flags: Standard},
		{Keyword: "$TR", Description: "trigger parameter and threshold", Category: Document, Kind: MultiValue, Versions: FCS3x, Flags: Standard},

		// plate bookkeeping (3.1)
		{Keyword: "$PLATEID", Description: "plate identifier", Category: Plate, Kind: String, Versions: FCS31, Flags: Standard | PersonalInfo},
		{Keyword: "$PLATENAME", Description: "plate name", Category: Plate, Kind: String, Versions: FCS31, Flags: Standard | PersonalInfo},
		{Keyword: "$WELLID", Description: "well identifier", Category: Plate, Kind: String, Versions: FCS31, Flags: Standard | PersonalInfo},

		// per-parameter keys
		{Keyword: "$PnB", Description: "bits reserved per parameter value", Category: Parameter, Kind: Integer, Versions: AllVersions, Flags: Standard | Required | IsParameter, IndexOffset: 2},
		{Keyword: "$PnE", Description: "amplification exponent (decades, offset)", Category: Parameter, Kind: MultiValue, Versions: AllVersions, Flags: Standard | Required | IsParameter, IndexOffset: 2},
		{Keyword: "$PnR", Description: "parameter range", Category: Parameter, Kind: Integer, Versions: AllVersions, Flags: Standard | Required | IsParameter, IndexOffset: 2},
		{Keyword: "$PnN", Description: "short parameter name", Category: Parameter, Kind: String, Versions: AllVersions, Flags: Standard | Required | IsParameter, IndexOffset: 2},
		{Keyword: "$PnS", Description: "long parameter name", Category: Parameter, Kind: String, Versions: AllVersions, Flags: Standard | IsParameter, IndexOffset: 2},
		{Keyword: "$PnF", Description: "optical filter", Category: Parameter, Kind: String, Versions: AllVersions, Flags: Standard | IsParameter, IndexOffset: 2},
		{Keyword: "$PnG", Description: "linear amplifier gain", Category: Parameter, Kind: Float, Versions: FCS3x, Flags: Standard | IsParameter, IndexOffset: 2},
		{Keyword: "$PnL", Description: "excitation wavelengths, in nanometers", Category: Parameter, Kind: MultiValue, Versions: AllVersions, Flags: Standard | IsParameter, IndexOffset: 2},
		{Keyword: "$PnO", Description: "excitation power, in milliwatts", Category: Parameter, Kind: Integer, Versions: AllVersions, Flags: Standard | IsParameter, IndexOffset: 2},
		{Keyword: "$PnP", Description: "percent of emitted light collected", Category: Parameter, Kind: Integer, Versions: AllVersions, Flags: Standard | IsParameter, IndexOffset: 2},
		{Keyword: "$PnT", Description: "detector type", Category: Parameter, Kind: String, Versions: AllVersions, Flags: Standard | IsParameter, IndexOffset: 2},
		{Keyword: "$PnV", Description: "detector voltage", Category: Parameter, Kind: Float, Versions: AllVersions, Flags: Standard | IsParameter, IndexOffset: 2},
		{Keyword: "$PnD", Description: "suggested visualization scale", Category: Parameter, Kind: MultiValue, Versions: FCS31, Flags: Standard | IsParameter, IndexOffset: 2},
		{Keyword: "$PnCALIBRATION", Description: "conversion to well-defined units", Category: Parameter, Kind: MultiValue, Versions: FCS31, Flags: Standard | IsParameter, IndexOffset: 2},

		// gating (the gate tree itself lives outside this package)
		{Keyword: "$GATE", Description: "number of gating parameters", Category: Gating, Kind: Integer, Versions: AllVersions, Flags: Standard | Deprecated},
		{Keyword: "$GATING", Description: "region combination gating expression", Category: Gating, Kind: String, Versions: FCS3x, Flags: Standard | Deprecated},
		{Keyword: "$GnE", Description: "gating parameter amplification exponent", Category: Gating, Kind: MultiValue, Versions: AllVersions, Flags: Standard | Deprecated | IsGate, IndexOffset: 2},
		{Keyword: "$GnF", Description: "gating parameter optical filter", Category: Gating, Kind: String, Versions: AllVersions, Flags: Standard | Deprecated | IsGate, IndexOffset: 2},
		{Keyword: "$GnN", Description: "gating parameter short name", Category: Gating, Kind: String, Versions: AllVersions, Flags: Standard | Deprecated | IsGate, IndexOffset: 2},
		{Keyword: "$GnP", Description: "gating parameter percent of light collected", Category: Gating, Kind: Integer, Versions: AllVersions, Flags: Standard | Deprecated | IsGate, IndexOffset: 2},
		{Keyword: "$GnR", Description: "gating parameter range", Category: Gating, Kind: Integer, Versions: AllVersions, Flags: Standard | Deprecated | IsGate, IndexOffset: 2},
		{Keyword: "$GnS", Description: "gating parameter long name", Category: Gating, Kind: String, Versions: AllVersions, Flags: Standard | Deprecated | IsGate, IndexOffset: 2},
		{Keyword: "$GnT", Description: "gating parameter detector type", Category: Gating, Kind: String, Versions: AllVersions, Flags: Standard | Deprecated | IsGate, IndexOffset: 2},
		{Keyword: "$GnV", Description: "gating parameter detector voltage", Category: Gating, Kind: Float, Versions: AllVersions, Flags: Standard | Deprecated | IsGate, IndexOffset: 2},
		{Keyword: "$RnI", Description: "gating region parameter list", Category: Gating, Kind: MultiValue, Versions: FCS3x, Flags: Standard | Deprecated | IsGate, IndexOffset: 2},
		{Keyword: "$RnW", Description: "gating region window list", Category: Gating, Kind: MultiValue, Versions: FCS3x, Flags: Standard | Deprecated | IsGate, IndexOffset: 2},

		// compensation
		{Keyword: "$SPILLOVER", Description: "fluorescence spillover matrix", Category: Compensation, Kind: MultiValue, Versions: FCS31, Flags: Standard},
		{Keyword: "$COMP", Description: "fluorescence compensation matrix", Category: Compensation, Kind: MultiValue, Versions: FCS30, Flags: Standard | Deprecated},

		// deprecated histogram modes
		{Keyword: "$PKn", Description: "peak channel of univariate histogram", Category: Histogram, Kind: Integer, Versions: AllVersions, Flags: Standard | Deprecated | IsParameter, IndexOffset: 3},
		{Keyword: "$PKNn", Description: "count in the peak channel", Category: Histogram, Kind: Integer, Versions: AllVersions, Flags: Standard | Deprecated | IsParameter, IndexOffset: 4},
		{Keyword: "$CSMODE", Description: "cell subset mode", Category: Histogram, Kind: Integer, Versions: FCS3x, Flags: Standard | Deprecated},
		{Keyword: "$CSVBITS", Description: "bits used to encode cell subset identifiers", Category: Histogram, Kind: Integer, Versions: FCS3x, Flags: Standard | Deprecated},
		{Keyword: "$CSVnFLAG", Description: "cell subset flag bit assignment", Category: Histogram, Kind: Integer, Versions: FCS3x, Flags: Standard | Deprecated, IndexOffset: 4},
	}
}
