// internal/antidetect/stealth.go
package antidetect

// StealthScript masks the properties headless-detection snippets probe
// first: navigator.webdriver, the empty plugin list and missing languages.
// The driver evaluates it after every navigation.
const StealthScript = `(() => {
	try {
		Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
		if (navigator.plugins.length === 0) {
			Object.defineProperty(navigator, 'plugins', { get: () => [1, 2, 3] });
		}
		if (navigator.languages.length === 0) {
			Object.defineProperty(navigator, 'languages', { get: () => ['en-US', 'en'] });
		}
		window.chrome = window.chrome || { runtime: {} };
	} catch (e) {}
	return true;
})()`
