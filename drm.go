package epubfind

import "encoding/xml"

// encryptionPath is the standard path of the encryption descriptor.
const encryptionPath = "META-INF/encryption.xml"

// fairPlayPath indicates Apple FairPlay DRM when present.
const fairPlayPath = "META-INF/sinf.xml"

// Font obfuscation algorithm URIs. These do not encrypt the text content,
// so an ePub carrying only these entries is still searchable.
var fontObfuscationAlgorithms = map[string]bool{
	"http://www.idpf.org/2008/embedding": true, // IDPF font obfuscation
	"http://ns.adobe.com/pdf/enc#RC":     true, // Adobe font obfuscation
}

type xmlEncryption struct {
	XMLName       xml.Name `xml:"encryption"`
	EncryptedData []struct {
		EncryptionMethod struct {
			Algorithm string `xml:"Algorithm,attr"`
		} `xml:"EncryptionMethod"`
	} `xml:"EncryptedData"`
}

// checkDRM returns ErrDRMProtected when the archive carries content
// encryption, since encrypted documents cannot be searched. Font
// obfuscation alone passes. An unparseable encryption.xml is treated
// conservatively as DRM.
func (b *Book) checkDRM() error {
	if b.findFile(fairPlayPath) != nil {
		return ErrDRMProtected
	}

	f := b.findFile(encryptionPath)
	if f == nil {
		return nil
	}
	data, err := readMember(f)
	if err != nil {
		return err
	}

	var enc xmlEncryption
	if err := xml.Unmarshal(stripBOM(data), &enc); err != nil {
		return ErrDRMProtected
	}

	for _, ed := range enc.EncryptedData {
		if !fontObfuscationAlgorithms[ed.EncryptionMethod.Algorithm] {
			return ErrDRMProtected
		}
	}
	return nil
}
