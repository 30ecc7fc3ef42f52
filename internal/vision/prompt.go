package vision

// Extraction prompts instruct the model to return bare JSON keyed by the
// canonical field names. Values the model cannot read come back as null and
// are dropped during parsing.

const passportPrompt = `Extract the following fields from this passport image.
Return ONLY a JSON object with these exact keys (use null for fields you cannot read):
{
  "surname": "family name as printed",
  "given_names": "first and middle names",
  "date_of_birth": "YYYY-MM-DD",
  "nationality": "3-letter country code",
  "passport_number": "alphanumeric passport number",
  "expiry_date": "YYYY-MM-DD",
  "sex": "M or F",
  "place_of_birth": "city or country as printed"
}
Read the VISUAL ZONE (printed text), not the machine-readable zone at the bottom.
Preserve original casing, accents, and diacritics exactly as printed.`

const g28Prompt = `Extract the following fields from this USCIS Form G-28 image.
Return ONLY a JSON object with these exact keys (use null for fields you cannot read):
{
  "attorney_surname": "attorney or representative family name",
  "attorney_given_names": "attorney or representative given names",
  "attorney_bar_number": "state bar number",
  "attorney_uscis_account": "USCIS online account number",
  "law_firm": "name of law firm or organization",
  "client_surname": "client family name",
  "client_given_names": "client given names",
  "client_alien_number": "client A-Number",
  "client_daytime_phone": "client daytime telephone",
  "client_email": "client email address"
}
Transcribe printed text only; leave handwritten entries null.`

// promptFor selects the prompt by document type, defaulting to passport.
func promptFor(documentType string) string {
	if documentType == "g28" {
		return g28Prompt
	}
	return passportPrompt
}
