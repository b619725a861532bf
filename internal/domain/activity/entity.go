package activity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is one of the fixed tupoksi (duty categories) of a teacher
type Category string

const (
	CategoryMenyusunKurikulum       Category = "Menyusun kurikulum"
	CategoryMenyusunSilabus         Category = "Menyusun silabus/ATP"
	CategoryMenyusunRPP             Category = "Menyusun RPP/Modul Ajar"
	CategoryMelaksanakanKBM         Category = "Melaksanakan KBM"
	CategoryMenyusunInstrumen       Category = "Menyusun instrumen penilaian"
	CategoryMelaksanakanAsesmen     Category = "Melaksanakan asesmen"
	CategoryMenganalisisAsesmen     Category = "Menganalisis hasil asesmen"
	CategoryPengayaanPerbaikan      Category = "Melaksanakan program pengayaan/perbaikan"
	CategoryPengawasAsesmen         Category = "Menjadi pengawas asesmen"
	CategoryPengawasAsesmenNasional Category = "Menjadi pengawas asesmen nasional"
	CategoryPengembanganDiri        Category = "Melaksanakan pengembangan diri"
	CategoryPublikasiIlmiah         Category = "Melaksanakan publikasi ilmiah"
	CategoryKegiatanSekolah         Category = "Melaksanakan kegiatan di sekolah"
)

// Categories lists every category in the order the monthly recap prints them
var Categories = []Category{
	CategoryMenyusunKurikulum,
	CategoryMenyusunSilabus,
	CategoryMenyusunRPP,
	CategoryMelaksanakanKBM,
	CategoryMenyusunInstrumen,
	CategoryMelaksanakanAsesmen,
	CategoryMenganalisisAsesmen,
	CategoryPengayaanPerbaikan,
	CategoryPengawasAsesmen,
	CategoryPengawasAsesmenNasional,
	CategoryPengembanganDiri,
	CategoryPublikasiIlmiah,
	CategoryKegiatanSekolah,
}

var buktiDokumen = map[Category]string{
	CategoryMenyusunKurikulum:       "Kurikulum Madrasah",
	CategoryMenyusunSilabus:         "Silabus/ATP",
	CategoryMenyusunRPP:             "RPP/Modul Ajar",
	CategoryMelaksanakanKBM:         "Jadwal/Jurnal",
	CategoryMenyusunInstrumen:       "Kisi-kisi/Soal",
	CategoryMelaksanakanAsesmen:     "Daftar Nilai",
	CategoryMenganalisisAsesmen:     "Lembar Analisis",
	CategoryPengayaanPerbaikan:      "Program",
	CategoryPengawasAsesmen:         "SK/Laporan",
	CategoryPengawasAsesmenNasional: "SK/Laporan",
	CategoryPengembanganDiri:        "Laporan/Sertifikat",
	CategoryPublikasiIlmiah:         "Laporan",
	CategoryKegiatanSekolah:         "Jadwal/Daftar Hadir",
}

// BuktiDokumen returns the proof document expected for the category, or "-"
func (c Category) BuktiDokumen() string {
	if doc, ok := buktiDokumen[c]; ok {
		return doc
	}
	return "-"
}

func (c Category) IsValid() bool {
	_, ok := buktiDokumen[c]
	return ok
}

// CategoryValues returns the category names as plain strings
func CategoryValues() []string {
	values := make([]string, len(Categories))
	for i, c := range Categories {
		values[i] = string(c)
	}
	return values
}

// Activity is an ad-hoc kegiatan logged by a teacher on a single date
type Activity struct {
	ID          string
	UserID      string
	Date        string // YYYY-MM-DD
	Category    Category
	Description string
	Output      string
	Volume      decimal.Decimal
	Unit        string
	FullDay     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
