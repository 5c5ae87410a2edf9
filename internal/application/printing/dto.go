package printing

import "time"

// PDFDocument is a rendered invoice ready to be streamed
type PDFDocument struct {
	Filename  string
	Data      []byte
	PageCount int
}

// ArchiveResponse describes an archived invoice PDF
type ArchiveResponse struct {
	InvoiceID   int64     `json:"id_facture"`
	Reference   string    `json:"reference"`
	Key         string    `json:"cle"`
	DownloadURL string    `json:"url_telechargement"`
	ExpiresAt   time.Time `json:"expire_le"`
	Size        int       `json:"taille"`
}
