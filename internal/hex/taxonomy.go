package hex

// taxonomy.go holds the keyword configuration the scorer and classifier run
// on. Keywords are locale-tagged data, not scattered literals: the compiled
// defaults cover English and Chinese headers, and a deployment can extend
// or replace them from a YAML file without touching algorithm code.

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Keyword is one locale-tagged match string. Matching is always done on
// the lower-cased text; Locale is informational.
type Keyword struct {
	Text   string `yaml:"text"`
	Locale string `yaml:"locale"`
}

// RelevanceCategory is one weighted keyword group used to score how likely
// a table is to contain heat-exchanger data.
type RelevanceCategory struct {
	Name     string    `yaml:"name"`
	Weight   int       `yaml:"weight"`
	Keywords []Keyword `yaml:"keywords"`
}

// Taxonomy is the full keyword configuration: weighted relevance categories
// for table scoring, and per-field keyword lists for column classification.
// A Taxonomy is immutable once built; share one across extractions.
type Taxonomy struct {
	Relevance []RelevanceCategory `yaml:"relevance"`
	Fields    map[Field][]Keyword `yaml:"fields"`
}

func en(texts ...string) []Keyword {
	kws := make([]Keyword, len(texts))
	for i, t := range texts {
		kws[i] = Keyword{Text: t, Locale: "en"}
	}
	return kws
}

func zh(texts ...string) []Keyword {
	kws := make([]Keyword, len(texts))
	for i, t := range texts {
		kws[i] = Keyword{Text: t, Locale: "zh"}
	}
	return kws
}

func both(english, chinese []Keyword) []Keyword {
	return append(append([]Keyword{}, english...), chinese...)
}

// DefaultTaxonomy returns the built-in English+Chinese keyword tables.
func DefaultTaxonomy() *Taxonomy {
	return &Taxonomy{
		Relevance: []RelevanceCategory{
			{
				Name:   "heat_exchanger_indicator",
				Weight: 3,
				Keywords: both(
					en("heat", "exchanger", "hex", "hx", "cooler", "heater", "condenser"),
					zh("换热", "换热器"),
				),
			},
			{
				Name:   "temperature",
				Weight: 2,
				Keywords: both(
					en("temp", "temperature", "hot", "cold"),
					zh("温度", "热", "冷"),
				),
			},
			{
				Name:   "duty_load",
				Weight: 2,
				Keywords: both(
					en("duty", "load", "power", "kw", "mw"),
					zh("负荷"),
				),
			},
			{
				Name:   "area",
				Weight: 2,
				Keywords: both(
					en("area", "m2", "m²", "surface"),
					zh("面积"),
				),
			},
			{
				Name:   "flow_stream",
				Weight: 1,
				Keywords: both(
					en("flow", "mass", "kg/h", "stream"),
					zh("流量"),
				),
			},
		},
		Fields: map[Field][]Keyword{
			FieldEquipmentName: both(
				en("name", "id", "tag", "equipment", "hex", "exchanger", "unit", "no", "number"),
				zh("名称", "设备", "换热器", "编号", "序号"),
			),
			FieldDuty: both(
				en("duty", "load", "heat", "power", "thermal", "energy", "kw", "mw", "btu", "kcal",
					"q", "q_duty", "heat_duty", "thermal_load"),
				zh("负荷", "热负荷", "功率", "热量", "能量", "热功率"),
			),
			FieldArea: both(
				en("area", "surface", "heat_area", "transfer_area", "m2", "m²", "ft2", "ft²"),
				zh("面积", "换热面积", "传热面积", "表面积"),
			),
			FieldTemperature: both(
				en("temp", "temperature", "deg", "celsius", "fahrenheit", "°c", "°f"),
				zh("温度", "度"),
			),
			FieldPressure: both(
				en("press", "pressure", "bar", "psi", "pa", "mpa", "kpa", "atm"),
				zh("压力", "压强"),
			),
			FieldHotStreamName: both(
				en("hot", "shell", "hot_stream", "hot_side", "hot_fluid", "process",
					"hot_name", "shell_name", "hot_stream_name"),
				zh("热", "热流", "壳程", "热侧", "热介质"),
			),
			FieldColdStreamName: both(
				en("cold", "tube", "cold_stream", "cold_side", "cold_fluid", "utility",
					"cold_name", "tube_name", "cold_stream_name"),
				zh("冷", "冷流", "管程", "冷侧", "冷介质"),
			),
			FieldHotInletTemp: both(
				en("hot_in", "hot_inlet", "shell_in", "shell_inlet", "h_in", "hot_temp_in",
					"hot_in_temp", "shell_in_temp", "hot_inlet_temperature"),
				zh("热进", "热入口", "壳程进口", "热侧进口"),
			),
			FieldHotOutletTemp: both(
				en("hot_out", "hot_outlet", "shell_out", "shell_outlet", "h_out", "hot_temp_out",
					"hot_out_temp", "shell_out_temp", "hot_outlet_temperature"),
				zh("热出", "热出口", "壳程出口", "热侧出口"),
			),
			FieldColdInletTemp: both(
				en("cold_in", "cold_inlet", "tube_in", "tube_inlet", "c_in", "cold_temp_in",
					"cold_in_temp", "tube_in_temp", "cold_inlet_temperature"),
				zh("冷进", "冷入口", "管程进口", "冷侧进口"),
			),
			FieldColdOutletTemp: both(
				en("cold_out", "cold_outlet", "tube_out", "tube_outlet", "c_out", "cold_temp_out",
					"cold_out_temp", "tube_out_temp", "cold_outlet_temperature"),
				zh("冷出", "冷出口", "管程出口", "冷侧出口"),
			),
			FieldHotFlow: both(
				en("hot_flow", "shell_flow", "hot_mass", "hot_mass_flow", "hot_molar",
					"hot_flow_rate", "shell_flow_rate", "process_flow"),
				zh("热流量", "壳程流量", "热侧流量"),
			),
			FieldColdFlow: both(
				en("cold_flow", "tube_flow", "cold_mass", "cold_mass_flow", "cold_molar",
					"cold_flow_rate", "tube_flow_rate", "utility_flow"),
				zh("冷流量", "管程流量", "冷侧流量"),
			),
			FieldGenericFlow: both(
				en("flow", "mass", "molar", "kg/h", "kmol/h", "m3/h", "rate", "flowrate"),
				zh("流量", "质量", "摩尔", "速率"),
			),
			FieldGenericStream: both(
				en("stream", "fluid", "medium", "side"),
				zh("流股", "介质", "流体", "侧"),
			),
		},
	}
}

// LoadTaxonomy reads a taxonomy from a YAML file. Relevance categories and
// field keyword lists present in the file replace the corresponding default
// entries; everything else keeps the built-in configuration.
func LoadTaxonomy(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("taxonomy load: %w", err)
	}

	var override Taxonomy
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("taxonomy parse %s: %w", path, err)
	}

	tax := DefaultTaxonomy()
	if len(override.Relevance) > 0 {
		tax.Relevance = override.Relevance
	}
	for f, kws := range override.Fields {
		if !validField(f) {
			return nil, fmt.Errorf("taxonomy parse %s: unknown field %q", path, f)
		}
		tax.Fields[f] = kws
	}
	return tax, nil
}

func validField(f Field) bool {
	for _, known := range Fields {
		if f == known {
			return true
		}
	}
	return false
}

// AllKeywords returns every field keyword with its owning field, in
// classification order. Used for unmapped-column suggestions.
func (t *Taxonomy) AllKeywords() []FieldKeyword {
	var out []FieldKeyword
	for _, f := range Fields {
		for _, kw := range t.Fields[f] {
			out = append(out, FieldKeyword{Field: f, Keyword: kw})
		}
	}
	return out
}

// FieldKeyword pairs a keyword with the field it classifies into.
type FieldKeyword struct {
	Field   Field
	Keyword Keyword
}
