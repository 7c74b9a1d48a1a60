package domain

import (
	"fmt"
	"strings"
)

// Division identifies one of the four independent report schemas.
type Division string

const (
	DivisionGA  Division = "ga"
	DivisionACC Division = "acc"
	DivisionPCC Division = "pcc"
	DivisionHRD Division = "hrd"
)

// Divisions in dashboard order.
var Divisions = []Division{DivisionHRD, DivisionACC, DivisionPCC, DivisionGA}

func ParseDivision(s string) (Division, error) {
	d := Division(strings.ToLower(s))
	switch d {
	case DivisionGA, DivisionACC, DivisionPCC, DivisionHRD:
		return d, nil
	}
	return "", fmt.Errorf("unknown division %q", s)
}

func (d Division) TableName() string {
	return "reports_" + string(d)
}

// Code is the short upper-case form shown in the activity feed.
func (d Division) Code() string {
	return strings.ToUpper(string(d))
}

func (d Division) Label() string {
	switch d {
	case DivisionGA:
		return "General Affairs (GA)"
	case DivisionACC:
		return "Accounting (ACC)"
	case DivisionPCC:
		return "Production Control (PCC)"
	case DivisionHRD:
		return "Human Resources (HRD)"
	}
	return string(d)
}

type FieldType string

const (
	FieldNumber FieldType = "number"
	FieldText   FieldType = "text"
)

type FieldDef struct {
	Name  string    `json:"name"`
	Label string    `json:"label"`
	Type  FieldType `json:"type"`
}

type Section struct {
	Title  string     `json:"title"`
	Fields []FieldDef `json:"fields"`
}

// Static per-division form definitions. The repository layer derives its
// column lists from these, so a field added here must exist in the matching
// reports_* table.
var divisionSchemas = map[Division][]Section{
	DivisionGA: {
		{Title: "Limbah Cair", Fields: []FieldDef{
			{Name: "limbah_cair_inlet", Label: "Inlet (m³)", Type: FieldNumber},
			{Name: "limbah_cair_outlet", Label: "Outlet (m³)", Type: FieldNumber},
			{Name: "cod_inlet", Label: "COD Inlet (mg/L)", Type: FieldNumber},
			{Name: "cod_outlet", Label: "COD Outlet (mg/L)", Type: FieldNumber},
		}},
		{Title: "Limbah B3", Fields: []FieldDef{
			{Name: "b3_majun_ton", Label: "Majun (Ton)", Type: FieldNumber},
			{Name: "b3_air_ton", Label: "Air Limbah B3 (Ton)", Type: FieldNumber},
		}},
		{Title: "Limbah Padat", Fields: []FieldDef{
			{Name: "padat_logam_ton", Label: "Logam (Ton)", Type: FieldNumber},
			{Name: "padat_domestik_ton", Label: "Domestik (Ton)", Type: FieldNumber},
		}},
		{Title: "Energi & Air", Fields: []FieldDef{
			{Name: "listrik_pln_kwh", Label: "Listrik PLN (kWh)", Type: FieldNumber},
			{Name: "listrik_non_pln_kwh", Label: "Listrik Non-PLN (kWh)", Type: FieldNumber},
			{Name: "air_pdam_m3", Label: "Air PDAM (m³)", Type: FieldNumber},
			{Name: "biaya_air_rp", Label: "Biaya Air (Rp)", Type: FieldNumber},
		}},
	},
	DivisionACC: {
		{Title: "Persediaan Bahan Baku", Fields: []FieldDef{
			{Name: "bahan_baku_awal", Label: "Nilai Awal (Rp)", Type: FieldNumber},
			{Name: "bahan_baku_akhir", Label: "Nilai Akhir (Rp)", Type: FieldNumber},
		}},
		{Title: "Persediaan Barang Jadi", Fields: []FieldDef{
			{Name: "barang_jadi_awal", Label: "Nilai Awal (Rp)", Type: FieldNumber},
			{Name: "barang_jadi_akhir", Label: "Nilai Akhir (Rp)", Type: FieldNumber},
		}},
		{Title: "Investasi Aset Tetap", Fields: []FieldDef{
			{Name: "inv_tanah", Label: "Tanah (Rp)", Type: FieldNumber},
			{Name: "inv_bangunan", Label: "Bangunan (Rp)", Type: FieldNumber},
			{Name: "inv_mesin", Label: "Mesin (Rp)", Type: FieldNumber},
		}},
		{Title: "Modal Asing", Fields: []FieldDef{
			{Name: "pct_asing", Label: "Persentase Modal Asing (%)", Type: FieldNumber},
			{Name: "negara_asal_asing", Label: "Negara Asal", Type: FieldText},
			{Name: "status_produksi", Label: "Status Produksi", Type: FieldText},
		}},
	},
	DivisionPCC: {
		{Title: "Data Mesin", Fields: []FieldDef{
			{Name: "nama_mesin", Label: "Nama Mesin", Type: FieldText},
			{Name: "merk_tipe", Label: "Merk/Tipe", Type: FieldText},
			{Name: "tahun_buat", Label: "Tahun Pembuatan", Type: FieldNumber},
		}},
		{Title: "Data Produk", Fields: []FieldDef{
			{Name: "nama_produk", Label: "Nama Produk", Type: FieldText},
			{Name: "kbli_kode", Label: "Kode KBLI", Type: FieldText},
			{Name: "hs_kode", Label: "Kode HS", Type: FieldText},
		}},
		{Title: "Kapasitas Produksi", Fields: []FieldDef{
			{Name: "kapasitas_terpasang_thn", Label: "Kapasitas Terpasang/Tahun", Type: FieldNumber},
			{Name: "produksi_riil_thn", Label: "Produksi Riil/Tahun", Type: FieldNumber},
		}},
	},
	DivisionHRD: {
		{Title: "Upah & Biaya", Fields: []FieldDef{
			{Name: "upah_produksi", Label: "Upah Produksi (Rp)", Type: FieldNumber},
			{Name: "upah_lainnya", Label: "Upah Lainnya (Rp)", Type: FieldNumber},
			{Name: "sewa_tanah", Label: "Sewa Tanah (Rp)", Type: FieldNumber},
			{Name: "sewa_gedung", Label: "Sewa Gedung (Rp)", Type: FieldNumber},
			{Name: "biaya_logistik", Label: "Biaya Logistik (Rp)", Type: FieldNumber},
			{Name: "biaya_rnd", Label: "Biaya R&D (Rp)", Type: FieldNumber},
		}},
		{Title: "Tenaga Kerja Pria", Fields: []FieldDef{
			{Name: "tk_pria_tetap", Label: "Tetap (orang)", Type: FieldNumber},
			{Name: "tk_pria_tidak_tetap", Label: "Tidak Tetap (orang)", Type: FieldNumber},
		}},
		{Title: "Tenaga Kerja Wanita", Fields: []FieldDef{
			{Name: "tk_wanita_tetap", Label: "Tetap (orang)", Type: FieldNumber},
			{Name: "tk_wanita_tidak_tetap", Label: "Tidak Tetap (orang)", Type: FieldNumber},
		}},
		{Title: "Tingkat Pendidikan", Fields: []FieldDef{
			{Name: "edu_sd", Label: "SD (orang)", Type: FieldNumber},
			{Name: "edu_smp", Label: "SMP (orang)", Type: FieldNumber},
			{Name: "edu_sma", Label: "SMA (orang)", Type: FieldNumber},
			{Name: "edu_d3", Label: "D3 (orang)", Type: FieldNumber},
			{Name: "edu_s1", Label: "S1 (orang)", Type: FieldNumber},
		}},
	},
}

// SchemaFor returns the section layout used to render the division's form.
func SchemaFor(d Division) []Section {
	return divisionSchemas[d]
}

// FieldsFor returns the division's fields flattened in schema order.
func FieldsFor(d Division) []FieldDef {
	var fields []FieldDef
	for _, s := range divisionSchemas[d] {
		fields = append(fields, s.Fields...)
	}
	return fields
}

// FieldNamesFor returns just the column names, in schema order.
func FieldNamesFor(d Division) []string {
	fields := FieldsFor(d)
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// HumanizeFieldName turns a snake_case column name into the Title Case header
// used by the spreadsheet export: each underscore-delimited segment is
// capitalized ("tk_pria_tetap" -> "Tk Pria Tetap").
func HumanizeFieldName(name string) string {
	parts := strings.Split(name, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
