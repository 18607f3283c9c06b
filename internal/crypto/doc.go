// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements field-level encryption of personal data stored in
// user profiles.
//
// Every encrypted field is a self-describing blob. The layout is private to
// this application (it is not a public standard) and must stay byte-for-byte
// stable, otherwise previously stored profiles become unreadable:
//
//	base64.StdEncoding( salt[32] ‖ iv[16] ‖ tag[16] ‖ ciphertext[N] )
//
//   - salt: random per call, feeds the KDF
//   - iv: random per call, used as the AES-GCM nonce (16 bytes)
//   - tag: the 16-byte GCM authentication tag
//   - ciphertext: N ≥ 0 bytes, same length as the UTF-8 plaintext
//
// The AES-256 key is derived per call with scrypt (N=16384, r=8, p=1) from the
// process master key and the blob's salt, so decrypting needs nothing but the
// master key and the blob itself.
//
// Document helpers ([EncryptObject], [DecryptObject]) apply the cipher to an
// explicit [FieldTable] inside a map[string]any, renaming "<field>" to
// "<field>Encrypted" and back.
package crypto
