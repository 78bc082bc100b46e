package bucket

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// AWS Signature Version 4 for S3-compatible PUTs. Object keys never carry
// query parameters here, so the canonical query string is always empty and
// exactly four headers are signed.

const (
	signingAlgorithm = "AWS4-HMAC-SHA256"
	signedHeaders    = "content-type;host;x-amz-content-sha256;x-amz-date"

	amzDateFormat   = "20060102T150405Z"
	dateStampFormat = "20060102"
)

func hashSHA256(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func hmacSHA256(key []byte, data string) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(data))
	return mac.Sum(nil)
}

// canonicalRequest builds the canonical request string: method, URI, empty
// query, the four canonical headers in sorted order, the signed-headers list
// and the payload hash.
func canonicalRequest(method, path, contentType, host, payloadHash, amzDate string) string {
	return strings.Join([]string{
		method,
		path,
		"",
		"content-type:" + contentType,
		"host:" + host,
		"x-amz-content-sha256:" + payloadHash,
		"x-amz-date:" + amzDate,
		"",
		signedHeaders,
		payloadHash,
	}, "\n")
}

// stringToSign binds the hashed canonical request to the credential scope.
func stringToSign(amzDate, dateStamp, region, service, canonicalHash string) string {
	scope := fmt.Sprintf("%s/%s/%s/aws4_request", dateStamp, region, service)
	return strings.Join([]string{
		signingAlgorithm,
		amzDate,
		scope,
		canonicalHash,
	}, "\n")
}

// signingKey derives the key through the four-stage HMAC chain:
// date -> region -> service -> "aws4_request".
func signingKey(secretKey, dateStamp, region, service string) []byte {
	kDate := hmacSHA256([]byte("AWS4"+secretKey), dateStamp)
	kRegion := hmacSHA256(kDate, region)
	kService := hmacSHA256(kRegion, service)
	return hmacSHA256(kService, "aws4_request")
}

// signature computes the final hex signature over the string-to-sign.
func signature(secretKey, dateStamp, region, service, sts string) string {
	key := signingKey(secretKey, dateStamp, region, service)
	return hex.EncodeToString(hmacSHA256(key, sts))
}

// authorizationHeader assembles the Authorization header value.
func authorizationHeader(accessKey, dateStamp, region, service, sig string) string {
	return fmt.Sprintf("%s Credential=%s/%s/%s/%s/aws4_request, SignedHeaders=%s, Signature=%s",
		signingAlgorithm, accessKey, dateStamp, region, service, signedHeaders, sig)
}

// signPut computes the full Authorization value for a PUT of the given
// payload hash at path on host, at the given instant.
func signPut(accessKey, secretKey, region, service, path, host, contentType, payloadHash string, now time.Time) string {
	amzDate := now.UTC().Format(amzDateFormat)
	dateStamp := now.UTC().Format(dateStampFormat)

	canonical := canonicalRequest("PUT", path, contentType, host, payloadHash, amzDate)
	sts := stringToSign(amzDate, dateStamp, region, service, hashSHA256([]byte(canonical)))
	sig := signature(secretKey, dateStamp, region, service, sts)

	return authorizationHeader(accessKey, dateStamp, region, service, sig)
}
