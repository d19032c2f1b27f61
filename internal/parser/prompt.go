package parser

const documentSchema = `{
  "company": {
    "name": "",
    "contact_info": {"email": "", "phone": "", "address": "", "company": "", "project": "", "city": ""}
  },
  "person": {"name": "", "email": "", "phone": "", "title": ""},
  "proposal": {
    "currency": "",
    "total_amount": 0,
    "vat_rate": 20,
    "vat_amount": 0,
    "grand_total": 0,
    "items": [
      {
        "description": "", "quantity": 1, "unit": "Adet",
        "unit_price": 0, "total_price": 0,
        "width": 0, "length": 0, "piece_count": 0,
        "kelvin": 0, "watt": 0, "lumen": 0,
        "is_header": false,
        "attributes": {}
      }
    ]
  }
}`

const fieldMappingRules = `FIELD MAPPING RULES:
- Labels "Adı Soyadı", "İlgili", "Sayın", "Yetkili" all map to person.name.
- Labels "Firma", "Şirket", "Firma Adı", "Müşteri" map to company.name. Never use a sheet name (e.g. "Sayfa1", "Sheet1") as the company name.
- Labels "E-posta", "Email", "Mail" map to email fields; "Telefon", "Tel", "GSM" to phone fields.
- Item columns appear in this order when tabular: description, quantity, unit, unit price, total price. Map header-like rows without numeric values to items with "is_header": true and only a description.
- "En"/"Genişlik" is width in cm, "Boy"/"Uzunluk" is length in cm, "Adet Sayısı"/"Parça" is piece_count, "Kelvin"/"K" is kelvin, "Watt"/"W" is watt, "Lümen"/"Lumen"/"lm" is lumen.
- Any other detected key/value for an item goes into its "attributes" object; any other company-level detail goes into "contact_info" under its own key.
- Numbers may use Turkish formatting ("1.250,50" means 1250.50). Return plain JSON numbers.
- Use null for values genuinely absent from the document. Never invent data.`

// BuildProposalPrompt returns the extraction instruction for proposal
// documents (company + contact person + line items).
func BuildProposalPrompt() string {
	return `You are a data extraction assistant for a Turkish business CRM. Extract the proposal data from the provided document into the following JSON structure.

` + fieldMappingRules + `
- If no currency is stated, use "EUR".
- Extract EVERY line item. Do not skip, summarize, or merge rows.

Return ONLY valid JSON matching this schema, with no markdown fences and no explanation:

` + documentSchema
}

// BuildInvoicePrompt returns the extraction instruction for invoice
// documents. The invoice's own currency must be detected, not defaulted.
func BuildInvoicePrompt() string {
	return `You are a data extraction assistant for a Turkish business CRM. Extract the invoice data from the provided document (it may be an image of a scanned invoice) into the following JSON structure.

` + fieldMappingRules + `
- Detect the invoice currency from the document ("TL"/"₺" means "TRY"); leave it empty only if truly absent.
- "KDV" is VAT: map its percentage to vat_rate and its amount to vat_amount; "Genel Toplam"/"Toplam Tutar" is grand_total.
- The seller is the company; extract tax details ("Vergi No", "Vergi Dairesi") into contact_info under "tax_id" and "tax_office".
- Extract EVERY line item. Do not skip, summarize, or merge rows.

Return ONLY valid JSON matching this schema, with no markdown fences and no explanation:

` + documentSchema
}

// BuildItemsPrompt returns the extraction instruction for freeform pasted
// item lists with no company or contact context.
func BuildItemsPrompt() string {
	return `You are a data extraction assistant for a Turkish business CRM. The user pasted a freeform list of proposal line items. Extract them into the following JSON structure, leaving company and person empty.

` + fieldMappingRules + `

Return ONLY valid JSON matching this schema, with no markdown fences and no explanation:

` + documentSchema
}
